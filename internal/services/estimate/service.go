package estimate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"
	"feecalc/internal/repositories"
	"feecalc/internal/repositories/cache"
	"feecalc/internal/services/analytics"
	"feecalc/internal/validation"
)

// Service runs estimates and fans the results out to the optional
// collaborators. Any of repo, events and cache may be nil.
type Service struct {
	calc    Calculator
	repo    repositories.CalculationRepository
	events  analytics.Sink
	cache   ReportCache
	metrics MetricsCollector
	config  Config
	version string
}

func NewService(
	calc Calculator,
	repo repositories.CalculationRepository,
	events analytics.Sink,
	cache ReportCache,
	config Config,
	metrics MetricsCollector,
) *Service {
	if config.DefaultHistoryLimit <= 0 {
		config.DefaultHistoryLimit = DefaultHistoryLimit
	}
	if config.CollaboratorTimeout <= 0 {
		config.CollaboratorTimeout = DefaultCollaboratorTimeout
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &Service{
		calc:    calc,
		repo:    repo,
		events:  events,
		cache:   cache,
		metrics: metrics,
		config:  config,
		version: calc.Rates().Version,
	}
}

// Calculate prices in and archives the result under sessionID. Only engine
// errors are returned; an empty sessionID skips archiving.
func (s *Service) Calculate(ctx context.Context, sessionID string, in models.Inputs) (*Result, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(opCalculate, time.Since(start))
	}()

	key, keyErr := cache.ReportKey(s.version, in)
	if keyErr != nil {
		log.Printf("Failed to fingerprint estimate inputs: %v", keyErr)
	}

	result := &Result{SessionID: sessionID}
	if report, ok := s.cachedReport(ctx, key); ok {
		result.Report = report
		result.Cached = true
	} else {
		report, err := s.calc.Compute(in)
		if err != nil {
			s.metrics.RecordError(opCalculate, errorCode(err))
			return nil, err
		}
		result.Report = report
		s.cacheReport(ctx, key, report)
	}

	if sessionID != "" {
		result.CalculationID, result.Saved = s.save(ctx, sessionID, in, result.Report)
	}

	s.track(ctx, analytics.EventCalculationCompleted, analytics.Properties{
		"session_id":       sessionID,
		"monthly_volume":   in.MonthlyVolume,
		"total_fees":       result.Report.TotalFees,
		"effective_rate":   result.Report.EffectiveRatePercent,
		"features_enabled": in.Features(),
		"cached":           result.Cached,
	})

	return result, nil
}

// History returns up to limit archived calculations for sessionID, newest
// first. A non-positive limit selects the configured default.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]models.Calculation, error) {
	v := validation.New()
	v.Session("sessionId", sessionID)
	v.Check(limit <= validation.MaxHistoryLimit, "limit",
		fmt.Sprintf("must not be more than %d", validation.MaxHistoryLimit))
	if !v.Valid() {
		return nil, apperrors.InvalidInput(v.Errors)
	}

	if s.repo == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = s.config.DefaultHistoryLimit
	}

	calcs, err := s.repo.FindBySession(ctx, sessionID, limit)
	if err != nil {
		s.metrics.RecordError(opHistory, apperrors.CodePersistence)
		return nil, &apperrors.DomainError{
			Code:    apperrors.CodePersistence,
			Message: fmt.Sprintf("failed to load calculations: %v", err),
		}
	}
	if calcs == nil {
		calcs = []models.Calculation{}
	}
	return calcs, nil
}

// TrackFeatureToggle records a toggle change. Only an unknown feature name
// or a malformed session is reported back.
func (s *Service) TrackFeatureToggle(ctx context.Context, sessionID, feature string, enabled bool) error {
	v := validation.New()
	v.Check(len(sessionID) <= validation.MaxSessionIDLength, "sessionId",
		fmt.Sprintf("must not be more than %d characters long", validation.MaxSessionIDLength))
	v.Required("feature", feature)
	v.OneOf("feature", feature, models.FeatureNames...)
	if !v.Valid() {
		return apperrors.InvalidInput(v.Errors)
	}

	s.track(ctx, analytics.EventFeatureToggle, analytics.Properties{
		"session_id": sessionID,
		"feature":    feature,
		"enabled":    enabled,
	})
	return nil
}

func (s *Service) cachedReport(ctx context.Context, key string) (*models.FeeReport, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.CollaboratorTimeout)
	defer cancel()

	report, ok, err := s.cache.GetReport(ctx, key)
	if err != nil {
		log.Printf("Failed to read cached report %s: %v", key, err)
		s.metrics.RecordError(opCache, "read")
		return nil, false
	}
	if !ok {
		s.metrics.RecordCacheMiss(key)
		return nil, false
	}
	s.metrics.RecordCacheHit(key)
	return report, true
}

func (s *Service) cacheReport(ctx context.Context, key string, report *models.FeeReport) {
	if s.cache == nil || key == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.CollaboratorTimeout)
	defer cancel()

	if err := s.cache.CacheReport(ctx, key, report); err != nil {
		log.Printf("Failed to cache report %s: %v", key, err)
		s.metrics.RecordError(opCache, "write")
	}
}

func (s *Service) save(ctx context.Context, sessionID string, in models.Inputs, report *models.FeeReport) (string, bool) {
	if s.repo == nil {
		return "", false
	}

	calc, err := models.NewCalculation(sessionID, in, report)
	if err != nil {
		log.Printf("Failed to snapshot calculation for session %s: %v", sessionID, err)
		s.metrics.RecordError(opPersist, "snapshot")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.CollaboratorTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, calc); err != nil {
		log.Printf("Failed to save calculation for session %s: %v", sessionID, err)
		s.metrics.RecordError(opPersist, apperrors.CodePersistence)
		return "", false
	}
	return calc.ID.String(), true
}

func (s *Service) track(ctx context.Context, name string, props analytics.Properties) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.CollaboratorTimeout)
	defer cancel()

	if err := s.events.Track(ctx, name, props); err != nil {
		log.Printf("Failed to track %s event: %v", name, err)
		s.metrics.RecordError(opTrack, name)
	}
}

func errorCode(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "unknown"
}

// Rates returns the rate table estimates are priced against.
func (s *Service) Rates() models.RateTable {
	return s.calc.Rates()
}
