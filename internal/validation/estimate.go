package validation

import (
	"fmt"

	"feecalc/internal/models"
)

// Inputs validates a fee estimate request. Enum fields that only matter for
// the selected mode are checked by the engine against the rate table.
func (v *Validator) Inputs(in models.Inputs) {
	v.NonNegative("monthlyVolume", in.MonthlyVolume)
	v.Positive("avgTransactionSize", in.AvgTransactionSize)
	v.Range("disputeRatePercent", in.DisputeRatePercent, MinPercent, MaxPercent)
	v.Mix("methodMix", in.MethodMix)
}

// Mix validates method shares: known methods, each in [0,100], total at most 100.
func (v *Validator) Mix(field string, mix models.MethodMix) {
	for m, pct := range mix {
		key := fmt.Sprintf("%s.%s", field, m)
		v.Check(m.Valid(), key, "is not a supported payment method")
		v.Range(key, pct, MinPercent, MaxPercent)
	}
	v.Check(mix.Total().LessThanOrEqual(MaxPercent.Add(MixTolerance)), field, "must not total more than 100")
}

// Session validates an opaque session identifier.
func (v *Validator) Session(field, sessionID string) {
	v.Required(field, sessionID)
	v.Check(len(sessionID) <= MaxSessionIDLength, field,
		fmt.Sprintf("must not be more than %d characters long", MaxSessionIDLength))
}
