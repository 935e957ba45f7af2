package repositories

import (
	"context"

	"feecalc/internal/models"

	"gorm.io/gorm"
)

// CalculationRepository archives completed estimates.
type CalculationRepository interface {
	Create(ctx context.Context, calc *models.Calculation) error
	FindBySession(ctx context.Context, sessionID string, limit int) ([]models.Calculation, error)
}

type calculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Create(ctx context.Context, calc *models.Calculation) error {
	return r.db.WithContext(ctx).Create(calc).Error
}

// FindBySession returns the newest calculations first.
func (r *calculationRepository) FindBySession(ctx context.Context, sessionID string, limit int) ([]models.Calculation, error) {
	var calcs []models.Calculation
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&calcs).Error
	return calcs, err
}
