// Package quant implements the step-size arithmetic the exchange imposes
// on order quantities and limit prices. All math runs on exact decimals;
// callers convert string-decimal fields via models.Dec.
package quant

import "github.com/shopspring/decimal"

// StepPrecision is the number of decimal digits implied by a step's
// canonical string form ("0.001" -> 3, "5" -> 0).
func StepPrecision(step decimal.Decimal) int32 {
	if exp := step.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// RoundToStep rounds raw to the nearest integer multiple of step, then to
// the precision implied by the step itself. A non-positive step has no
// rounding rule and returns raw unchanged.
func RoundToStep(raw, step decimal.Decimal) decimal.Decimal {
	if step.Sign() <= 0 {
		return raw
	}
	rounded := raw.Div(step).Round(0).Mul(step)
	return rounded.Round(StepPrecision(step))
}

// ValidateQuantity reports whether quantity is an acceptable multiple of
// step. A zero step accepts everything. The tolerance is 1% of the step,
// absorbing representation error from values that passed through floats
// without accepting genuinely invalid quantities.
func ValidateQuantity(quantity, step decimal.Decimal) bool {
	if step.Sign() == 0 {
		return true
	}
	tolerance := step.Abs().Mul(decimal.NewFromFloat(0.01))
	remainder := quantity.Mod(step).Abs()
	return remainder.LessThan(tolerance) || step.Abs().Sub(remainder).LessThan(tolerance)
}

// OrderFromUSD converts a quote-currency amount into a base quantity at the
// given price, rounded to step. It returns the rounded quantity and its
// actual notional value. The quantity collapses to zero when usdAmount is
// below one step's notional; callers must treat that as an invalid order.
func OrderFromUSD(usdAmount, price, step decimal.Decimal) (quantity, notional decimal.Decimal) {
	if price.Sign() <= 0 {
		return decimal.Zero, decimal.Zero
	}
	quantity = RoundToStep(usdAmount.Div(price), step)
	return quantity, quantity.Mul(price)
}
