package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Calculation is an archived estimate: the inputs snapshot next to the
// report it produced.
type Calculation struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID          string          `gorm:"index;not null" json:"session_id"`
	MonthlyVolume      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"monthly_volume"`
	AvgTransactionSize decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"avg_transaction_size"`
	CardSubtype        string          `json:"card_subtype"`
	Features           pq.StringArray  `gorm:"type:text[]" json:"features"`
	Inputs             JSON            `gorm:"type:jsonb" json:"inputs"`
	TotalFees          decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_fees"`
	EffectiveRate      decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"effective_rate"`
	TransactionCount   int64           `json:"monthly_transactions"`
	Breakdown          JSON            `gorm:"type:jsonb" json:"breakdown"`
	StablecoinSavings  decimal.Decimal `gorm:"type:numeric(20,4)" json:"stablecoin_savings"`
	RateTableVersion   string          `json:"rate_table_version"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewCalculation snapshots in and report for storage under sessionID.
func NewCalculation(sessionID string, in Inputs, report *FeeReport) (*Calculation, error) {
	inputs, err := ToJSON(in)
	if err != nil {
		return nil, err
	}

	breakdown := make(JSON, len(report.Breakdown))
	for _, item := range report.Breakdown {
		breakdown[string(item.Category)] = item.Amount.StringFixed(4)
	}

	return &Calculation{
		ID:                 uuid.New(),
		SessionID:          sessionID,
		MonthlyVolume:      in.MonthlyVolume,
		AvgTransactionSize: in.AvgTransactionSize,
		CardSubtype:        string(in.CardSubtype),
		Features:           pq.StringArray(in.Features()),
		Inputs:             inputs,
		TotalFees:          report.TotalFees,
		EffectiveRate:      report.EffectiveRatePercent,
		TransactionCount:   report.TransactionCount,
		Breakdown:          breakdown,
		StablecoinSavings:  report.StablecoinSavings,
		RateTableVersion:   report.RateTableVersion,
		CreatedAt:          time.Now().UTC(),
	}, nil
}
