package estimate

import (
	"context"
	"time"

	"feecalc/internal/models"
)

// Calculator is the fee engine as seen by the service.
type Calculator interface {
	Compute(in models.Inputs) (*models.FeeReport, error)
	Rates() models.RateTable
}

// ReportCache stores reports by input fingerprint.
type ReportCache interface {
	CacheReport(ctx context.Context, key string, report *models.FeeReport) error
	GetReport(ctx context.Context, key string) (*models.FeeReport, bool, error)
}

// MetricsCollector defines the interface for collecting estimate metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
	RecordError(operation, errType string)
}

// Config holds configuration for the estimate service
type Config struct {
	DefaultHistoryLimit int
	CollaboratorTimeout time.Duration
}

// Result is a computed report plus what happened to it afterwards.
type Result struct {
	SessionID     string            `json:"session_id"`
	CalculationID string            `json:"calculation_id,omitempty"`
	Saved         bool              `json:"saved"`
	Cached        bool              `json:"cached"`
	Report        *models.FeeReport `json:"report"`
}
