package fee

import (
	"fmt"

	"feecalc/internal/models"
)

// Opportunities lists ways the merchant described by in could pay less.
// report must be the one computed from in and rates.
func Opportunities(in models.Inputs, rates models.RateTable, report *models.FeeReport) []models.Opportunity {
	in = in.WithDefaults()
	a := rates.Assumptions
	opps := []models.Opportunity{}

	if in.MonthlyVolume.GreaterThan(a.EnterpriseVolumeThreshold) {
		opps = append(opps, models.Opportunity{
			Type:    models.OpportunityVolume,
			Message: "Eligible for enterprise pricing - potential 15-25% savings",
		})
	}

	usesACH := in.MethodMix.Get(models.MethodACH).IsPositive()
	if in.SingleRate() {
		usesACH = in.Platform.ACH
	}
	if !usesACH && in.AvgTransactionSize.GreaterThan(a.ACHSuggestionTicketSize) {
		card := rates.Cards[models.CardDomestic]
		opps = append(opps, models.Opportunity{
			Type: models.OpportunityPaymentMethod,
			Message: fmt.Sprintf("Consider ACH for large transactions - save up to %s%%",
				card.Percent.Sub(rates.ACH.Percent).String()),
		})
	}

	international := in.MethodMix.Get(models.MethodInternationalCards).IsPositive()
	if in.SingleRate() {
		international = in.CardSubtype == models.CardInternational
	}
	if international {
		opps = append(opps, models.Opportunity{
			Type:    models.OpportunityInternational,
			Message: "Use local payment methods to reduce international fees",
		})
	}

	if report != nil && report.StablecoinSavings.IsPositive() {
		opps = append(opps, models.Opportunity{
			Type: models.OpportunityStablecoin,
			Message: fmt.Sprintf("Stablecoin settlement saves $%s per month compared to card processing",
				report.StablecoinSavings.StringFixed(2)),
		})
	}
	return opps
}
