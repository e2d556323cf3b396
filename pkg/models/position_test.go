package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionFromMap(t *testing.T) {
	t.Parallel()
	p := PositionFromMap(map[string]any{
		"id":               "pos-1",
		"asset_id":         "ETHUSDT",
		"order_type":       "SHORT",
		"size":             json.Number("0.1"),
		"entry_price":      json.Number("4200"),
		"market_price":     json.Number("4150"),
		"margin":           json.Number("42"),
		"unrealized_pnl":   json.Number("5"),
		"stoploss":         map[string]any{"price": "4400"},
		"takeprofit_price": json.Number("4000"),
	})

	assert.Equal(t, "pos-1", p.PositionID)
	assert.Equal(t, "ETHUSDT", p.Symbol)
	assert.Equal(t, Short, p.Side, "side falls back to order_type")
	assert.True(t, p.IsShort())
	assert.Equal(t, "0.1", p.Quantity)
	assert.Equal(t, "4150", p.MarkPrice, "market_price synonym resolves")
	assert.Equal(t, "4400", p.StoplossPrice, "nested stoploss price")
	assert.Equal(t, "4000", p.TakeprofitPrice, "flat takeprofit price")
	assert.Equal(t, PositionOpen, p.Status)
	assert.True(t, p.IsProfitable())
}

func TestPositionExposure(t *testing.T) {
	t.Parallel()
	p := Position{Quantity: "0.1", MarkPrice: "105000"}
	assert.Equal(t, "10500", p.Exposure())

	// A position parsed from a payload missing both quantity synonyms must
	// not report phantom exposure.
	ghost := PositionFromMap(map[string]any{"id": "pos-2", "mark_price": "105000"})
	assert.Equal(t, "0", ghost.Exposure())
}

func TestPositionPnLPercentage(t *testing.T) {
	t.Parallel()
	p := Position{Margin: "10", UnrealizedPnL: "1"}
	assert.InDelta(t, 10.0, p.PnLPercentage(), 1e-9)

	loss := Position{Margin: "50", UnrealizedPnL: "-5"}
	assert.InDelta(t, -10.0, loss.PnLPercentage(), 1e-9)

	zero := Position{Margin: "0", UnrealizedPnL: "1"}
	assert.Equal(t, 0.0, zero.PnLPercentage())
}

func TestRiskOrderPayload(t *testing.T) {
	t.Parallel()
	payload := RiskOrder{StoplossPrice: "100000"}.Payload()
	assert.Equal(t, "API", payload["order_source"])
	assert.Equal(t, true, payload["is_stoploss"])
	assert.Equal(t, "100000", payload["stoploss_price"])
	_, hasTP := payload["is_takeprofit"]
	assert.False(t, hasTP)
}
