/*
Package fee estimates monthly payment-processing fees for a merchant.

The Engine is a pure function of an Inputs snapshot and the RateTable it was
built with. It holds no mutable state and may be shared between goroutines.

Usage:

	engine, err := fee.NewEngine(models.DefaultRateTable())
	if err != nil {
		// the rate table is malformed
	}

	report, err := engine.Compute(inputs)

Modes:

When Inputs.MethodMix is set, volume is split across domestic cards,
international cards, ACH and stablecoins and each share is priced with its
own formula. When it is empty the whole volume is priced at the rate of
Inputs.CardSubtype and ACH is only charged through the ACH platform toggle.

Error Handling:

  - errors.ErrInvalidInput: negative volume, non-positive average size,
    out-of-range percentages or a mix totalling more than 100
  - errors.ErrConfiguration: the rate table lacks an entry the inputs select
*/
package fee
