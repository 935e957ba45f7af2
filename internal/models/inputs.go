package models

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	MethodDomesticCards      PaymentMethod = "domesticCards"
	MethodInternationalCards PaymentMethod = "internationalCards"
	MethodACH                PaymentMethod = "ach"
	MethodStablecoins        PaymentMethod = "stablecoins"
)

// PaymentMethods lists every method in evaluation order.
var PaymentMethods = []PaymentMethod{
	MethodDomesticCards,
	MethodInternationalCards,
	MethodACH,
	MethodStablecoins,
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodDomesticCards, MethodInternationalCards, MethodACH, MethodStablecoins:
		return true
	}
	return false
}

type CardSubtype string

const (
	CardDomestic      CardSubtype = "domestic"
	CardInternational CardSubtype = "international"
)

type StablecoinGateway string

const (
	GatewayPrimary     StablecoinGateway = "primary"
	GatewayAlternative StablecoinGateway = "alternative"
)

type StablecoinNetwork string

const (
	NetworkLowCost  StablecoinNetwork = "lowCost"
	NetworkStandard StablecoinNetwork = "standard"
)

// MethodMix maps each payment method to its share of monthly volume, in percent.
type MethodMix map[PaymentMethod]decimal.Decimal

// Get returns the share for m, zero when absent.
func (mix MethodMix) Get(m PaymentMethod) decimal.Decimal {
	if v, ok := mix[m]; ok {
		return v
	}
	return decimal.Zero
}

func (mix MethodMix) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range mix {
		total = total.Add(v)
	}
	return total
}

// Clone returns an independent copy of the mix.
func (mix MethodMix) Clone() MethodMix {
	out := make(MethodMix, len(mix))
	for k, v := range mix {
		out[k] = v
	}
	return out
}

// StablecoinConfig only matters when the mix routes volume to stablecoins.
type StablecoinConfig struct {
	Gateway                StablecoinGateway `json:"gateway"`
	Network                StablecoinNetwork `json:"network"`
	RequiresFiatConversion bool              `json:"requiresFiatConversion"`
}

// PlatformFeatures are optional products charged on assumed volume shares.
type PlatformFeatures struct {
	Terminal bool `json:"terminal"`
	ACH      bool `json:"ach"`
	Billing  bool `json:"billing"`
	Connect  bool `json:"connect"`
	Link     bool `json:"link"`
	Wallets  bool `json:"wallets"`
}

// Enabled returns the names of the toggled features.
func (p PlatformFeatures) Enabled() []string {
	var names []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"terminal", p.Terminal},
		{"ach", p.ACH},
		{"billing", p.Billing},
		{"connect", p.Connect},
		{"link", p.Link},
		{"wallets", p.Wallets},
	} {
		if f.on {
			names = append(names, f.name)
		}
	}
	return names
}

// Inputs is a read-only snapshot of everything a fee estimate depends on.
// An empty MethodMix selects single-rate mode, where the whole volume is
// charged at the CardSubtype rate.
type Inputs struct {
	MonthlyVolume          decimal.Decimal  `json:"monthlyVolume"`
	AvgTransactionSize     decimal.Decimal  `json:"avgTransactionSize"`
	MethodMix              MethodMix        `json:"methodMix,omitempty"`
	CardSubtype            CardSubtype      `json:"cardSubtype,omitempty"`
	FraudProtectionEnabled bool             `json:"fraudProtectionEnabled"`
	InstantPayoutsEnabled  bool             `json:"instantPayoutsEnabled"`
	DisputeRatePercent     decimal.Decimal  `json:"disputeRatePercent"`
	Stablecoin             StablecoinConfig `json:"stablecoin"`
	Platform               PlatformFeatures `json:"platform"`
}

func (in Inputs) SingleRate() bool {
	return len(in.MethodMix) == 0
}

// Features returns the names of every enabled toggle, for analytics and storage.
func (in Inputs) Features() []string {
	var names []string
	if in.FraudProtectionEnabled {
		names = append(names, "fraudProtection")
	}
	if in.InstantPayoutsEnabled {
		names = append(names, "instantPayouts")
	}
	if in.Stablecoin.RequiresFiatConversion && in.MethodMix.Get(MethodStablecoins).IsPositive() {
		names = append(names, "stablecoinConversion")
	}
	return append(names, in.Platform.Enabled()...)
}

// WithDefaults fills unset enum fields with the standard choices.
func (in Inputs) WithDefaults() Inputs {
	if in.CardSubtype == "" {
		in.CardSubtype = CardDomestic
	}
	if in.Stablecoin.Gateway == "" {
		in.Stablecoin.Gateway = GatewayPrimary
	}
	if in.Stablecoin.Network == "" {
		in.Stablecoin.Network = NetworkLowCost
	}
	return in
}

// CardMethod is the payment method a single-rate card subtype bills as.
func (c CardSubtype) CardMethod() PaymentMethod {
	if c == CardInternational {
		return MethodInternationalCards
	}
	return MethodDomesticCards
}

// FeatureNames lists every toggle that can be reported by Features.
var FeatureNames = []string{
	"fraudProtection",
	"instantPayouts",
	"stablecoinConversion",
	"terminal",
	"ach",
	"billing",
	"connect",
	"link",
	"wallets",
}
