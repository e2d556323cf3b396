package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.5", NormalizeQuantity(map[string]any{"quantity": "0.5"}))
	assert.Equal(t, "0.5", NormalizeQuantity(map[string]any{"size": "0.5"}))
	assert.Equal(t, "0.5", NormalizeQuantity(map[string]any{"quantity": "0.5", "size": "0.9"}),
		"quantity wins over size")
	assert.Equal(t, "0.5", NormalizeQuantity(map[string]any{"quantity": "", "size": "0.5"}),
		"an empty quantity falls through to size")
	assert.Equal(t, "0.5", NormalizeQuantity(map[string]any{"quantity": nil, "size": "0.5"}))
	assert.Equal(t, "0", NormalizeQuantity(map[string]any{}))
}

func TestNormalizeQuantityIdempotent(t *testing.T) {
	t.Parallel()
	data := map[string]any{"size": json.Number("0.003")}
	first := NormalizeQuantity(data)
	data["quantity"] = first
	assert.Equal(t, first, NormalizeQuantity(data))
}

func TestNormalizeMarkPrice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "105000", NormalizeMarkPrice(map[string]any{"mark_price": "105000"}))
	assert.Equal(t, "105000", NormalizeMarkPrice(map[string]any{"market_price": "105000"}))
	assert.Equal(t, "105000", NormalizeMarkPrice(map[string]any{"mark_price": "105000", "market_price": "1"}))
	assert.Equal(t, "0", NormalizeMarkPrice(map[string]any{}))
}

func TestRiskPrice(t *testing.T) {
	t.Parallel()
	nested := map[string]any{"stoploss": map[string]any{"price": "4100"}}
	assert.Equal(t, "4100", riskPrice(nested, "stoploss", "stoploss_price"))

	flat := map[string]any{"stoploss_price": "101000"}
	assert.Equal(t, "101000", riskPrice(flat, "stoploss", "stoploss_price"))

	both := map[string]any{
		"stoploss":       map[string]any{"price": "4100"},
		"stoploss_price": "101000",
	}
	assert.Equal(t, "4100", riskPrice(both, "stoploss", "stoploss_price"), "nested form wins")

	assert.Equal(t, "", riskPrice(map[string]any{}, "stoploss", "stoploss_price"))
}
