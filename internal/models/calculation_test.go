package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculation(t *testing.T) {
	in := Inputs{
		MonthlyVolume:          decimal.NewFromInt(20000),
		AvgTransactionSize:     decimal.NewFromInt(40),
		CardSubtype:            CardDomestic,
		InstantPayoutsEnabled:  true,
		Platform:               PlatformFeatures{Terminal: true, Wallets: true},
		DisputeRatePercent:     decimal.Zero,
		FraudProtectionEnabled: false,
	}
	report := &FeeReport{
		TotalFees:            decimal.RequireFromString("880.5"),
		EffectiveRatePercent: decimal.RequireFromString("4.4025"),
		TransactionCount:     500,
		Breakdown: Breakdown{
			{Category: CategoryCardProcessing, Amount: decimal.NewFromInt(730)},
			{Category: CategoryInstantPayouts, Amount: decimal.RequireFromString("150.5")},
		},
		RateTableVersion: "standard-2025-01",
	}

	calc, err := NewCalculation("session-9", in, report)
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(calc.ID))
	assert.Equal(t, "session-9", calc.SessionID)
	assert.Equal(t, "domestic", calc.CardSubtype)
	assert.Equal(t, []string{"instantPayouts", "terminal", "wallets"}, []string(calc.Features))
	assert.Equal(t, "730.0000", calc.Breakdown["cardProcessing"])
	assert.Equal(t, "150.5000", calc.Breakdown["instantPayouts"])
	assert.Equal(t, int64(500), calc.TransactionCount)
	assert.Equal(t, "standard-2025-01", calc.RateTableVersion)
	assert.Equal(t, "domestic", calc.Inputs["cardSubtype"])
	assert.False(t, calc.CreatedAt.IsZero())
}

func TestJSON_ValueScan(t *testing.T) {
	doc := JSON{"total": "12.5", "items": []interface{}{"a"}}

	raw, err := doc.Value()
	require.NoError(t, err)

	var back JSON
	require.NoError(t, back.Scan(raw))
	assert.Equal(t, "12.5", back["total"])

	require.NoError(t, back.Scan(`{"k":1}`))
	assert.Equal(t, float64(1), back["k"])

	require.NoError(t, back.Scan(nil))
	assert.Nil(t, back)

	assert.Error(t, back.Scan(42))

	var empty JSON
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
