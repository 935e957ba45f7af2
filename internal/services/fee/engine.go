package fee

import (
	apperrors "feecalc/internal/errors"
	"feecalc/internal/models"
	"feecalc/internal/validation"

	"github.com/shopspring/decimal"
)

// Engine computes fee reports against one immutable rate table.
type Engine struct {
	rates models.RateTable
}

// NewEngine validates table and keeps a private copy of it.
func NewEngine(table models.RateTable) (*Engine, error) {
	if err := ValidateRateTable(table); err != nil {
		return nil, err
	}
	return &Engine{rates: table.Clone()}, nil
}

// Rates returns a copy of the engine's rate table.
func (e *Engine) Rates() models.RateTable {
	return e.rates.Clone()
}

// Compute prices in. It fails with ErrInvalidInput before doing any work when
// in is malformed, and with ErrConfiguration when in selects a gateway,
// network or card subtype the rate table does not price.
func (e *Engine) Compute(in models.Inputs) (*models.FeeReport, error) {
	v := validation.New()
	v.Inputs(in)
	if !v.Valid() {
		return nil, apperrors.InvalidInput(v.Errors)
	}

	c := &computation{
		rates:     e.rates,
		in:        in.WithDefaults(),
		perVolume: make(map[models.PaymentMethod]decimal.Decimal, len(models.PaymentMethods)),
		savings:   decimal.Zero,
	}
	for _, m := range models.PaymentMethods {
		c.perVolume[m] = decimal.Zero
	}

	if err := c.run(); err != nil {
		return nil, err
	}
	return c.report(), nil
}

type computation struct {
	rates     models.RateTable
	in        models.Inputs
	breakdown models.Breakdown
	perVolume map[models.PaymentMethod]decimal.Decimal
	savings   decimal.Decimal
}

// add records amount under category; only positive amounts are itemized.
func (c *computation) add(category models.FeeCategory, amount decimal.Decimal) {
	if amount.IsPositive() {
		c.breakdown = append(c.breakdown, models.LineItem{Category: category, Amount: amount})
	}
}

func (c *computation) txns(volume decimal.Decimal) decimal.Decimal {
	return volume.Div(c.in.AvgTransactionSize)
}

func (c *computation) run() error {
	volume := c.in.MonthlyVolume
	if volume.IsZero() {
		return nil
	}

	var cardVolume decimal.Decimal
	if c.in.SingleRate() {
		v, err := c.singleRate()
		if err != nil {
			return err
		}
		cardVolume = v
	} else {
		if err := c.methods(); err != nil {
			return err
		}
		cardVolume = c.perVolume[models.MethodDomesticCards].Add(c.perVolume[models.MethodInternationalCards])
	}

	c.platform()
	c.crossCutting(c.txns(cardVolume))
	return nil
}

// singleRate prices the whole volume at one card rate and returns the card volume.
func (c *computation) singleRate() (decimal.Decimal, error) {
	volume := c.in.MonthlyVolume
	r, ok := c.rates.Cards[c.in.CardSubtype]
	if !ok {
		return decimal.Zero, apperrors.Configuration("no card rate for subtype %q", c.in.CardSubtype)
	}
	c.perVolume[c.in.CardSubtype.CardMethod()] = volume
	c.add(models.CategoryCardProcessing, charge(r, volume, c.txns(volume)))
	return volume, nil
}

func (c *computation) methods() error {
	for _, m := range models.PaymentMethods {
		c.perVolume[m] = percentOf(c.in.MonthlyVolume, c.in.MethodMix.Get(m))
	}

	if v := c.perVolume[models.MethodDomesticCards]; v.IsPositive() {
		c.add(models.CategoryDomesticCards, charge(c.rates.Cards[models.CardDomestic], v, c.txns(v)))
	}

	if v := c.perVolume[models.MethodInternationalCards]; v.IsPositive() {
		c.add(models.CategoryInternationalCards, charge(c.rates.Cards[models.CardInternational], v, c.txns(v)))
		converted := v.Mul(c.rates.Assumptions.InternationalConversionShare)
		c.add(models.CategoryCurrencyConversion, percentOf(converted, c.rates.CurrencyConversionPercent))
	}

	if v := c.perVolume[models.MethodACH]; v.IsPositive() {
		c.add(models.CategoryACHProcessing, c.ach(v))
	}

	if v := c.perVolume[models.MethodStablecoins]; v.IsPositive() {
		return c.stablecoins(v)
	}
	return nil
}

// ach caps each transaction before multiplying by the transaction count.
func (c *computation) ach(volume decimal.Decimal) decimal.Decimal {
	return c.txns(volume).Mul(perTransaction(c.rates.ACH, c.in.AvgTransactionSize))
}

func (c *computation) stablecoins(volume decimal.Decimal) error {
	cfg := c.in.Stablecoin
	gateway, ok := c.rates.StablecoinGateways[cfg.Gateway]
	if !ok {
		return apperrors.Configuration("no stablecoin gateway rate for %q", cfg.Gateway)
	}
	networkFee, ok := c.rates.StablecoinNetworkFees[cfg.Network]
	if !ok {
		return apperrors.Configuration("no stablecoin network fee for %q", cfg.Network)
	}

	txns := c.txns(volume)
	gatewayFees := percentOf(volume, gateway.Percent)
	networkFees := txns.Mul(networkFee)
	conversionFees := decimal.Zero
	if cfg.RequiresFiatConversion {
		conversionFees = percentOf(volume, c.rates.StablecoinConversionPercent)
	}

	c.add(models.CategoryStablecoinGateway, gatewayFees)
	c.add(models.CategoryStablecoinNetwork, networkFees)
	c.add(models.CategoryStablecoinConversion, conversionFees)

	// What the same volume would have cost as domestic card payments.
	equivalent := charge(c.rates.Cards[models.CardDomestic], volume, txns)
	actual := gatewayFees.Add(networkFees).Add(conversionFees)
	c.savings = decimal.Max(decimal.Zero, equivalent.Sub(actual))
	return nil
}

func (c *computation) platform() {
	volume := c.in.MonthlyVolume
	p := c.in.Platform
	a := c.rates.Assumptions

	if p.Terminal {
		v := volume.Mul(a.TerminalVolumeShare)
		c.add(models.CategoryTerminal, charge(c.rates.Terminal, v, c.txns(v)))
	}
	// With a method mix, ACH volume is already priced from its share.
	if p.ACH && c.in.SingleRate() {
		c.add(models.CategoryACHProcessing, c.ach(volume.Mul(a.ACHVolumeShare)))
	}
	if p.Billing {
		c.add(models.CategoryBilling, charge(c.rates.Billing, volume, c.txns(volume)))
	}
	if p.Connect {
		accounts := decimal.NewFromInt(a.ConnectActiveAccounts)
		c.add(models.CategoryConnect, percentOf(volume, c.rates.Connect.Percent).Add(accounts.Mul(c.rates.Connect.Fixed)))
	}
	if p.Link {
		v := volume.Mul(a.LinkVolumeShare)
		c.add(models.CategoryLink, charge(c.rates.Link, v, c.txns(v)))
	}
	if p.Wallets {
		v := volume.Mul(a.WalletsVolumeShare)
		c.add(models.CategoryWallets, charge(c.rates.Wallets, v, c.txns(v)))
	}
}

func (c *computation) crossCutting(cardTxns decimal.Decimal) {
	if c.in.FraudProtectionEnabled {
		c.add(models.CategoryFraudProtection, cardTxns.Mul(c.rates.FraudPerTransaction))
	}

	disputes := percentOf(cardTxns, c.in.DisputeRatePercent)
	c.add(models.CategoryDisputes, disputes.Mul(c.rates.DisputeFee))

	if c.in.InstantPayoutsEnabled {
		payout := c.rates.InstantPayout
		fee := percentOf(c.in.MonthlyVolume, payout.Percent)
		if payout.Minimum.Valid {
			floor := payout.Minimum.Decimal.Mul(decimal.NewFromInt(c.rates.Assumptions.PayoutsPerMonth))
			fee = decimal.Max(fee, floor)
		}
		c.add(models.CategoryInstantPayouts, fee)
	}
}

func (c *computation) report() *models.FeeReport {
	volume := c.in.MonthlyVolume
	total := c.breakdown.Total()
	if c.breakdown == nil {
		c.breakdown = models.Breakdown{}
	}

	effective := decimal.Zero
	if volume.IsPositive() {
		effective = total.Div(volume).Mul(hundred)
	}

	perFees := make(map[models.PaymentMethod]decimal.Decimal, len(models.PaymentMethods))
	for _, m := range models.PaymentMethods {
		perFees[m] = decimal.Zero
	}
	for _, item := range c.breakdown {
		m, ok := models.CategoryMethod[item.Category]
		if item.Category == models.CategoryCardProcessing {
			m, ok = c.in.CardSubtype.CardMethod(), true
		}
		if ok {
			perFees[m] = perFees[m].Add(item.Amount)
		}
	}

	perRate := make(map[models.PaymentMethod]decimal.Decimal, len(models.PaymentMethods))
	for _, m := range models.PaymentMethods {
		perRate[m] = decimal.Zero
		if v := c.perVolume[m]; v.IsPositive() {
			perRate[m] = perFees[m].Div(v).Mul(hundred)
		}
	}

	report := &models.FeeReport{
		TotalFees:              total,
		EffectiveRatePercent:   effective,
		TransactionCount:       volume.Div(c.in.AvgTransactionSize).Round(0).IntPart(),
		Breakdown:              c.breakdown,
		NetRevenue:             volume.Sub(total),
		StablecoinSavings:      c.savings,
		PerMethodVolume:        c.perVolume,
		PerMethodFees:          perFees,
		PerMethodEffectiveRate: perRate,
		RateTableVersion:       c.rates.Version,
	}
	report.SavingsOpportunities = Opportunities(c.in, c.rates, report)
	return report
}
