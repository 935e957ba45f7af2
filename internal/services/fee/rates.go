package fee

import (
	"fmt"

	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"
	"feecalc/internal/validation"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ValidateRateTable checks that every entry the engine may read is present
// and sane.
func ValidateRateTable(t models.RateTable) error {
	v := validation.New()
	v.Required("version", t.Version)

	for _, c := range []models.CardSubtype{models.CardDomestic, models.CardInternational} {
		r, ok := t.Cards[c]
		v.Check(ok, fmt.Sprintf("cards.%s", c), "is missing")
		rate(v, fmt.Sprintf("cards.%s", c), r)
	}
	v.Check(len(t.StablecoinGateways) > 0, "stablecoinGateways", "must not be empty")
	// Gateways charge a percentage only; network fees carry the per-transaction part.
	for g, r := range t.StablecoinGateways {
		field := fmt.Sprintf("stablecoinGateways.%s", g)
		rate(v, field, r)
		v.Check(r.Fixed.IsZero(), field+".fixed", "must be zero")
		v.Check(!r.Cap.Valid && !r.Minimum.Valid, field, "must not set a cap or minimum")
	}
	v.Check(len(t.StablecoinNetworkFees) > 0, "stablecoinNetworkFees", "must not be empty")
	for n, f := range t.StablecoinNetworkFees {
		v.NonNegative(fmt.Sprintf("stablecoinNetworkFees.%s", n), f)
	}

	v.Range("currencyConversionPercent", t.CurrencyConversionPercent, validation.MinPercent, validation.MaxPercent)
	v.Range("stablecoinConversionPercent", t.StablecoinConversionPercent, validation.MinPercent, validation.MaxPercent)
	v.NonNegative("disputeFee", t.DisputeFee)
	v.NonNegative("fraudPerTransaction", t.FraudPerTransaction)

	rate(v, "ach", t.ACH)
	rate(v, "instantPayout", t.InstantPayout)
	rate(v, "terminal", t.Terminal)
	rate(v, "billing", t.Billing)
	rate(v, "connect", t.Connect)
	rate(v, "link", t.Link)
	rate(v, "wallets", t.Wallets)

	a := t.Assumptions
	v.Range("assumptions.internationalConversionShare", a.InternationalConversionShare, decimal.Zero, one)
	v.Range("assumptions.terminalVolumeShare", a.TerminalVolumeShare, decimal.Zero, one)
	v.Range("assumptions.achVolumeShare", a.ACHVolumeShare, decimal.Zero, one)
	v.Range("assumptions.linkVolumeShare", a.LinkVolumeShare, decimal.Zero, one)
	v.Range("assumptions.walletsVolumeShare", a.WalletsVolumeShare, decimal.Zero, one)
	v.Check(a.ConnectActiveAccounts >= 0, "assumptions.connectActiveAccounts", "must not be negative")
	v.Check(a.PayoutsPerMonth > 0, "assumptions.payoutsPerMonth", "must be greater than 0")
	v.NonNegative("assumptions.enterpriseVolumeThreshold", a.EnterpriseVolumeThreshold)
	v.NonNegative("assumptions.achSuggestionTicketSize", a.ACHSuggestionTicketSize)

	if !v.Valid() {
		return &apperrors.DomainError{
			Code:    apperrors.CodeConfiguration,
			Message: apperrors.ErrConfiguration.Message,
			Fields:  v.Errors,
		}
	}
	return nil
}

func rate(v *validation.Validator, field string, r models.Rate) {
	v.Range(field+".percent", r.Percent, validation.MinPercent, validation.MaxPercent)
	v.NonNegative(field+".fixed", r.Fixed)
	if r.Cap.Valid {
		v.NonNegative(field+".cap", r.Cap.Decimal)
	}
	if r.Minimum.Valid {
		v.NonNegative(field+".minimum", r.Minimum.Decimal)
	}
}

// percentOf returns pct percent of amount.
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// charge prices volume spread over txns transactions at r.
func charge(r models.Rate, volume, txns decimal.Decimal) decimal.Decimal {
	return percentOf(volume, r.Percent).Add(txns.Mul(r.Fixed))
}

// perTransaction prices a single ticket at r, honouring its cap and minimum.
func perTransaction(r models.Rate, ticket decimal.Decimal) decimal.Decimal {
	fee := percentOf(ticket, r.Percent).Add(r.Fixed)
	if r.Cap.Valid {
		fee = decimal.Min(fee, r.Cap.Decimal)
	}
	if r.Minimum.Valid {
		fee = decimal.Max(fee, r.Minimum.Decimal)
	}
	return fee
}
