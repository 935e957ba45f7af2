package estimate

import "time"

// Default configuration values
const (
	DefaultHistoryLimit        = 20
	DefaultCollaboratorTimeout = 3 * time.Second
)

// Operation names used for metrics.
const (
	opCalculate = "calculate"
	opCache     = "cache"
	opPersist   = "persist"
	opTrack     = "track"
	opHistory   = "history"
)
