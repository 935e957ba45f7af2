package fee

import (
	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"
	"feecalc/internal/validation"

	"github.com/shopspring/decimal"
)

// shareScale bounds the decimal places kept when shares are rescaled.
// Quotients are truncated so the rescaled total never exceeds 100.
const shareScale = 10

// SetMethodPercentage returns a copy of mix with method set to value,
// clamped to [0,100]. The incoming mix must already pass validation.Mix. When the other methods would push the total past 100
// they are scaled down proportionally to fill exactly what is left. When
// they already fit, they are left untouched and the total may stay below
// 100. If every other method is at zero the remainder stays unallocated.
func SetMethodPercentage(mix models.MethodMix, method models.PaymentMethod, value decimal.Decimal) (models.MethodMix, error) {
	v := validation.New()
	v.Check(method.Valid(), "method", "is not a supported payment method")
	v.Mix("methodMix", mix)
	if !v.Valid() {
		return nil, apperrors.InvalidInput(v.Errors)
	}

	value = decimal.Max(decimal.Zero, decimal.Min(hundred, value))
	out := mix.Clone()

	others := decimal.Zero
	for m, pct := range mix {
		if m != method {
			others = others.Add(pct)
		}
	}

	if others.Add(value).GreaterThan(hundred) {
		remaining := hundred.Sub(value)
		for m, pct := range mix {
			if m == method {
				continue
			}
			share, _ := pct.Mul(remaining).QuoRem(others, shareScale)
			out[m] = share
		}
	}

	out[method] = value
	return out, nil
}
