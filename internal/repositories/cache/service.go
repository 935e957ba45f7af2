package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feecalc/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCacheService(client redis.Cmdable, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Report caching
func (s *CacheService) CacheReport(ctx context.Context, key string, report *models.FeeReport) error {
	if report == nil {
		return errors.New("cannot cache nil report")
	}
	return s.Set(ctx, key, report)
}

func (s *CacheService) GetReport(ctx context.Context, key string) (*models.FeeReport, bool, error) {
	var report models.FeeReport
	found, err := s.Get(ctx, key, &report)
	if err != nil || !found {
		return nil, false, err
	}
	return &report, true, nil
}
