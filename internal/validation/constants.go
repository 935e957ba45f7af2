package validation

import "github.com/shopspring/decimal"

var (
	MinPercent = decimal.Zero
	MaxPercent = decimal.NewFromInt(100)

	// Mix totals may exceed 100 by rounding noise from proportional rescaling.
	MixTolerance = decimal.New(1, -9)
)

const (
	MaxSessionIDLength = 128
	MaxHistoryLimit    = 100
)
