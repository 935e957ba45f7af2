package models

import "github.com/shopspring/decimal"

type FeeCategory string

const (
	CategoryCardProcessing       FeeCategory = "cardProcessing"
	CategoryDomesticCards        FeeCategory = "domesticCards"
	CategoryInternationalCards   FeeCategory = "internationalCards"
	CategoryCurrencyConversion   FeeCategory = "currencyConversion"
	CategoryACHProcessing        FeeCategory = "achProcessing"
	CategoryStablecoinGateway    FeeCategory = "stablecoinGateway"
	CategoryStablecoinNetwork    FeeCategory = "stablecoinNetwork"
	CategoryStablecoinConversion FeeCategory = "stablecoinConversion"
	CategoryTerminal             FeeCategory = "terminal"
	CategoryBilling              FeeCategory = "billing"
	CategoryConnect              FeeCategory = "connect"
	CategoryLink                 FeeCategory = "link"
	CategoryWallets              FeeCategory = "wallets"
	CategoryFraudProtection      FeeCategory = "fraudProtection"
	CategoryDisputes             FeeCategory = "disputes"
	CategoryInstantPayouts       FeeCategory = "instantPayouts"
)

// CategoryMethod attributes method-specific categories to their payment
// method. Categories absent from the map are cross-cutting.
var CategoryMethod = map[FeeCategory]PaymentMethod{
	CategoryDomesticCards:        MethodDomesticCards,
	CategoryInternationalCards:   MethodInternationalCards,
	CategoryCurrencyConversion:   MethodInternationalCards,
	CategoryACHProcessing:        MethodACH,
	CategoryStablecoinGateway:    MethodStablecoins,
	CategoryStablecoinNetwork:    MethodStablecoins,
	CategoryStablecoinConversion: MethodStablecoins,
}

type LineItem struct {
	Category FeeCategory     `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Breakdown keeps line items in the order they were evaluated.
type Breakdown []LineItem

// Get returns the amount for c and whether it is present.
func (b Breakdown) Get(c FeeCategory) (decimal.Decimal, bool) {
	for _, item := range b {
		if item.Category == c {
			return item.Amount, true
		}
	}
	return decimal.Zero, false
}

func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b {
		total = total.Add(item.Amount)
	}
	return total
}

func (b Breakdown) Categories() []FeeCategory {
	out := make([]FeeCategory, len(b))
	for i, item := range b {
		out[i] = item.Category
	}
	return out
}

type OpportunityType string

const (
	OpportunityVolume        OpportunityType = "volume"
	OpportunityPaymentMethod OpportunityType = "payment_method"
	OpportunityInternational OpportunityType = "international"
	OpportunityStablecoin    OpportunityType = "stablecoin"
)

// Opportunity is a hint about how the merchant could lower fees.
type Opportunity struct {
	Type    OpportunityType `json:"type"`
	Message string          `json:"message"`
}

// FeeReport is fully derived from one Inputs value and one RateTable.
type FeeReport struct {
	TotalFees              decimal.Decimal                   `json:"totalFees"`
	EffectiveRatePercent   decimal.Decimal                   `json:"effectiveRatePercent"`
	TransactionCount       int64                             `json:"transactionCount"`
	Breakdown              Breakdown                         `json:"breakdown"`
	NetRevenue             decimal.Decimal                   `json:"netRevenue"`
	StablecoinSavings      decimal.Decimal                   `json:"stablecoinSavings"`
	PerMethodVolume        map[PaymentMethod]decimal.Decimal `json:"perMethodVolume"`
	PerMethodFees          map[PaymentMethod]decimal.Decimal `json:"perMethodFees"`
	PerMethodEffectiveRate map[PaymentMethod]decimal.Decimal `json:"perMethodEffectiveRate"`
	SavingsOpportunities   []Opportunity                     `json:"savingsOpportunities"`
	RateTableVersion       string                            `json:"rateTableVersion"`
}
