package quant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStepPrecision(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int32(3), StepPrecision(dec("0.001")))
	assert.Equal(t, int32(1), StepPrecision(dec("0.5")))
	assert.Equal(t, int32(0), StepPrecision(dec("5")))
	assert.Equal(t, int32(0), StepPrecision(dec("10")))
}

func TestRoundToStep(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw, step, want string
	}{
		{"0.0014", "0.001", "0.001"},
		{"0.0016", "0.001", "0.002"},
		{"0.12345678", "0.0001", "0.1235"},
		{"7", "5", "5"},
		{"104500.3", "0.5", "104500.5"},
		{"1.999999999", "0.001", "2"},
	}
	for _, tt := range tests {
		got := RoundToStep(dec(tt.raw), dec(tt.step))
		assert.True(t, got.Equal(dec(tt.want)), "%s @ step %s: got %s, want %s", tt.raw, tt.step, got, tt.want)
	}
}

func TestRoundToStepNonPositiveStep(t *testing.T) {
	t.Parallel()
	raw := dec("0.12345")
	assert.True(t, RoundToStep(raw, decimal.Zero).Equal(raw))
	assert.True(t, RoundToStep(raw, dec("-0.001")).Equal(raw))
}

func TestRoundToStepProducesValidQuantity(t *testing.T) {
	t.Parallel()
	steps := []string{"0.001", "0.01", "0.5", "1", "5"}
	raws := []string{"0.0004", "0.37", "12.34", "99.999", "3.333333"}
	for _, s := range steps {
		for _, r := range raws {
			step := dec(s)
			rounded := RoundToStep(dec(r), step)
			assert.True(t, ValidateQuantity(rounded, step),
				"rounding %s to step %s gave %s, which fails validation", r, s, rounded)
		}
	}
}

func TestValidateQuantity(t *testing.T) {
	t.Parallel()
	step := dec("0.001")
	assert.True(t, ValidateQuantity(dec("0.005"), step))
	assert.True(t, ValidateQuantity(dec("0.0050000001"), step), "float residue within tolerance")
	assert.False(t, ValidateQuantity(dec("0.0055"), step), "half a step off is invalid")
	assert.True(t, ValidateQuantity(dec("123.456"), decimal.Zero), "zero step accepts everything")
}

func TestOrderFromUSD(t *testing.T) {
	t.Parallel()
	qty, notional := OrderFromUSD(dec("100"), dec("50000"), dec("0.001"))
	assert.True(t, qty.Equal(dec("0.002")), "got %s", qty)
	assert.True(t, notional.Equal(dec("100")), "got %s", notional)

	// The notional of the rounded quantity stays within one step's worth
	// of the requested amount.
	qty, notional = OrderFromUSD(dec("75"), dec("104000"), dec("0.0001"))
	require.True(t, qty.Sign() > 0)
	stepNotional := dec("0.0001").Mul(dec("104000"))
	assert.True(t, notional.Sub(dec("75")).Abs().LessThanOrEqual(stepNotional),
		"notional %s drifted more than one step from 75", notional)
}

func TestOrderFromUSDBelowOneStep(t *testing.T) {
	t.Parallel()
	qty, notional := OrderFromUSD(dec("1"), dec("105000"), dec("0.001"))
	assert.True(t, qty.IsZero(), "amount below one step's notional collapses to zero")
	assert.True(t, notional.IsZero())
}

func TestOrderFromUSDInvalidPrice(t *testing.T) {
	t.Parallel()
	qty, notional := OrderFromUSD(dec("100"), decimal.Zero, dec("0.001"))
	assert.True(t, qty.IsZero())
	assert.True(t, notional.IsZero())
}
