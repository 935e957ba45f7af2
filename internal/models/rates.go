package models

import "github.com/shopspring/decimal"

// Rate is one pricing entry: a percentage of volume plus a fixed amount per
// transaction, with an optional per-transaction cap and minimum.
type Rate struct {
	Percent decimal.Decimal     `json:"percent"`
	Fixed   decimal.Decimal     `json:"fixed"`
	Cap     decimal.NullDecimal `json:"cap"`
	Minimum decimal.NullDecimal `json:"minimum"`
}

// Assumptions are policy constants used where the calculator has no real
// data, e.g. which share of international volume needs currency conversion.
type Assumptions struct {
	InternationalConversionShare decimal.Decimal `json:"internationalConversionShare"`
	TerminalVolumeShare          decimal.Decimal `json:"terminalVolumeShare"`
	ACHVolumeShare               decimal.Decimal `json:"achVolumeShare"`
	LinkVolumeShare              decimal.Decimal `json:"linkVolumeShare"`
	WalletsVolumeShare           decimal.Decimal `json:"walletsVolumeShare"`
	ConnectActiveAccounts        int64           `json:"connectActiveAccounts"`
	PayoutsPerMonth              int64           `json:"payoutsPerMonth"`
	EnterpriseVolumeThreshold    decimal.Decimal `json:"enterpriseVolumeThreshold"`
	ACHSuggestionTicketSize      decimal.Decimal `json:"achSuggestionTicketSize"`
}

// RateTable is versioned reference data. Engines receive it explicitly and
// never modify it.
type RateTable struct {
	Version                     string                                `json:"version"`
	Cards                       map[CardSubtype]Rate                  `json:"cards"`
	CurrencyConversionPercent   decimal.Decimal                       `json:"currencyConversionPercent"`
	ACH                         Rate                                  `json:"ach"`
	StablecoinGateways          map[StablecoinGateway]Rate            `json:"stablecoinGateways"`
	StablecoinNetworkFees       map[StablecoinNetwork]decimal.Decimal `json:"stablecoinNetworkFees"`
	StablecoinConversionPercent decimal.Decimal                       `json:"stablecoinConversionPercent"`
	InstantPayout               Rate                                  `json:"instantPayout"`
	DisputeFee                  decimal.Decimal                       `json:"disputeFee"`
	FraudPerTransaction         decimal.Decimal                       `json:"fraudPerTransaction"`
	Terminal                    Rate                                  `json:"terminal"`
	Billing                     Rate                                  `json:"billing"`
	Connect                     Rate                                  `json:"connect"`
	Link                        Rate                                  `json:"link"`
	Wallets                     Rate                                  `json:"wallets"`
	Assumptions                 Assumptions                           `json:"assumptions"`
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

// DefaultRateTable returns a fresh copy of the published standard pricing.
func DefaultRateTable() RateTable {
	return RateTable{
		Version: "standard-2025-01",
		Cards: map[CardSubtype]Rate{
			CardDomestic:      {Percent: d("2.9"), Fixed: d("0.30")},
			CardInternational: {Percent: d("3.4"), Fixed: d("0.30")},
		},
		CurrencyConversionPercent: d("1.0"),
		ACH:                       Rate{Percent: d("0.8"), Cap: nd("5.00")},
		StablecoinGateways: map[StablecoinGateway]Rate{
			GatewayPrimary:     {Percent: d("1.5")},
			GatewayAlternative: {Percent: d("0.9")},
		},
		StablecoinNetworkFees: map[StablecoinNetwork]decimal.Decimal{
			NetworkLowCost:  d("0.05"),
			NetworkStandard: d("0.10"),
		},
		StablecoinConversionPercent: d("0.5"),
		InstantPayout:               Rate{Percent: d("1.5"), Minimum: nd("0.50")},
		DisputeFee:                  d("15.00"),
		FraudPerTransaction:         d("0.05"),
		Terminal:                    Rate{Percent: d("2.7"), Fixed: d("0.05")},
		Billing:                     Rate{Percent: d("0.5")},
		Connect:                     Rate{Percent: d("0.25"), Fixed: d("2.00")},
		Link:                        Rate{Percent: d("2.9"), Fixed: d("0.30")},
		Wallets:                     Rate{Percent: d("2.9"), Fixed: d("0.30")},
		Assumptions: Assumptions{
			InternationalConversionShare: d("0.20"),
			TerminalVolumeShare:          d("0.30"),
			ACHVolumeShare:               d("0.20"),
			LinkVolumeShare:              d("0.10"),
			WalletsVolumeShare:           d("0.15"),
			ConnectActiveAccounts:        100,
			PayoutsPerMonth:              30,
			EnterpriseVolumeThreshold:    d("500000"),
			ACHSuggestionTicketSize:      d("100"),
		},
	}
}

// Clone returns a copy that shares no maps with t.
func (t RateTable) Clone() RateTable {
	out := t
	out.Cards = make(map[CardSubtype]Rate, len(t.Cards))
	for k, v := range t.Cards {
		out.Cards[k] = v
	}
	out.StablecoinGateways = make(map[StablecoinGateway]Rate, len(t.StablecoinGateways))
	for k, v := range t.StablecoinGateways {
		out.StablecoinGateways[k] = v
	}
	out.StablecoinNetworkFees = make(map[StablecoinNetwork]decimal.Decimal, len(t.StablecoinNetworkFees))
	for k, v := range t.StablecoinNetworkFees {
		out.StablecoinNetworkFees[k] = v
	}
	return out
}
