package fee

import (
	"errors"
	"testing"

	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMix() models.MethodMix {
	return models.MethodMix{
		models.MethodDomesticCards:      dec("70"),
		models.MethodInternationalCards: dec("10"),
		models.MethodACH:                dec("10"),
		models.MethodStablecoins:        dec("10"),
	}
}

func TestSetMethodPercentage(t *testing.T) {
	tests := []struct {
		name   string
		mix    models.MethodMix
		method models.PaymentMethod
		value  string
		want   map[models.PaymentMethod]string
	}{
		{
			name:   "others scale down proportionally",
			mix:    defaultMix(),
			method: models.MethodDomesticCards,
			value:  "85",
			want: map[models.PaymentMethod]string{
				models.MethodDomesticCards:      "85",
				models.MethodInternationalCards: "5",
				models.MethodACH:                "5",
				models.MethodStablecoins:        "5",
			},
		},
		{
			name:   "others untouched when total fits",
			mix:    defaultMix(),
			method: models.MethodDomesticCards,
			value:  "50",
			want: map[models.PaymentMethod]string{
				models.MethodDomesticCards:      "50",
				models.MethodInternationalCards: "10",
				models.MethodACH:                "10",
				models.MethodStablecoins:        "10",
			},
		},
		{
			name:   "value above 100 is clamped",
			mix:    defaultMix(),
			method: models.MethodACH,
			value:  "150",
			want: map[models.PaymentMethod]string{
				models.MethodDomesticCards:      "0",
				models.MethodInternationalCards: "0",
				models.MethodACH:                "100",
				models.MethodStablecoins:        "0",
			},
		},
		{
			name:   "negative value is clamped to zero",
			mix:    defaultMix(),
			method: models.MethodStablecoins,
			value:  "-20",
			want: map[models.PaymentMethod]string{
				models.MethodDomesticCards:      "70",
				models.MethodInternationalCards: "10",
				models.MethodACH:                "10",
				models.MethodStablecoins:        "0",
			},
		},
		{
			name:   "remainder stays unallocated when others are zero",
			mix:    models.MethodMix{models.MethodDomesticCards: dec("100"), models.MethodACH: decimal.Zero},
			method: models.MethodDomesticCards,
			value:  "40",
			want: map[models.PaymentMethod]string{
				models.MethodDomesticCards: "40",
				models.MethodACH:           "0",
			},
		},
		{
			name:   "new method added to empty mix",
			mix:    models.MethodMix{},
			method: models.MethodACH,
			value:  "30",
			want:   map[models.PaymentMethod]string{models.MethodACH: "30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.mix.Clone()

			got, err := SetMethodPercentage(tt.mix, tt.method, dec(tt.value))
			require.NoError(t, err)

			require.Len(t, got, len(tt.want))
			for m, want := range tt.want {
				assertDecimal(t, want, got[m], m)
			}
			assert.Equal(t, before, tt.mix, "input mix must not be modified")
		})
	}
}

func TestSetMethodPercentage_TotalNeverExceeds100(t *testing.T) {
	mixes := []models.MethodMix{
		defaultMix(),
		{
			models.MethodInternationalCards: dec("1"),
			models.MethodACH:                dec("1"),
			models.MethodStablecoins:        dec("1"),
		},
		{
			models.MethodDomesticCards:      dec("33.3333"),
			models.MethodInternationalCards: dec("33.3333"),
			models.MethodACH:                dec("33.3334"),
		},
		{models.MethodStablecoins: dec("100")},
	}
	values := []string{"0", "0.5", "1", "33.33", "66.67", "99.5", "99.9999999", "100", "250"}

	for _, mix := range mixes {
		for _, m := range models.PaymentMethods {
			for _, v := range values {
				got, err := SetMethodPercentage(mix, m, dec(v))
				require.NoError(t, err)

				assert.True(t, got.Total().LessThanOrEqual(dec("100")), "total %s after setting %s=%s", got.Total(), m, v)
				want := decimal.Min(dec("100"), dec(v))
				assertDecimal(t, want.String(), got[m])
				for _, pct := range got {
					assert.False(t, pct.IsNegative())
				}
			}
		}
	}
}

func TestSetMethodPercentage_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mix    models.MethodMix
		method models.PaymentMethod
		field  string
	}{
		{
			name:   "unknown target method",
			mix:    defaultMix(),
			method: "cheques",
			field:  "method",
		},
		{
			name:   "negative share in mix",
			mix:    models.MethodMix{models.MethodDomesticCards: dec("-50"), models.MethodACH: dec("20")},
			method: models.MethodStablecoins,
			field:  "methodMix.domesticCards",
		},
		{
			name:   "share above 100 in mix",
			mix:    models.MethodMix{models.MethodACH: dec("200")},
			method: models.MethodStablecoins,
			field:  "methodMix.ach",
		},
		{
			name:   "unknown method in mix",
			mix:    models.MethodMix{models.MethodACH: dec("20"), "cheques": dec("30")},
			method: models.MethodStablecoins,
			field:  "methodMix.cheques",
		},
		{
			name: "mix totals more than 100",
			mix: models.MethodMix{
				models.MethodDomesticCards: dec("80"),
				models.MethodACH:           dec("30"),
			},
			method: models.MethodStablecoins,
			field:  "methodMix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetMethodPercentage(tt.mix, tt.method, dec("10"))
			assert.Nil(t, got)
			require.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)

			var de *apperrors.DomainError
			require.True(t, errors.As(err, &de))
			assert.Contains(t, de.Fields, tt.field)
		})
	}
}
