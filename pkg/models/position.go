package models

import "time"

// Position is an open or closed futures exposure. Positions are always
// parsed from a fresh exchange response; nothing in this package or the
// client caches them. A cached position risks reporting exposure that no
// longer matches exchange truth.
type Position struct {
	PositionID       string
	AssetID          string
	Symbol           string
	Side             OrderType
	Quantity         string
	EntryPrice       string
	MarkPrice        string
	Leverage         string
	Margin           string
	UnrealizedPnL    string
	RealizedPnL      string
	LiquidationPrice string
	StoplossPrice    string
	TakeprofitPrice  string
	Status           PositionStatus
	CreatedAt        time.Time
}

func PositionFromMap(data map[string]any) Position {
	return Position{
		PositionID:       optField(data, "position_id", "id"),
		AssetID:          optField(data, "asset_id"),
		Symbol:           optField(data, "symbol", "asset_id"),
		Side:             OrderType(stringField(data, string(Long), "side", "order_type")),
		Quantity:         NormalizeQuantity(data),
		EntryPrice:       stringField(data, "0", "entry_price"),
		MarkPrice:        NormalizeMarkPrice(data),
		Leverage:         stringField(data, "1", "leverage"),
		Margin:           stringField(data, "0", "margin"),
		UnrealizedPnL:    stringField(data, "0", "unrealized_pnl"),
		RealizedPnL:      stringField(data, "0", "realized_pnl"),
		LiquidationPrice: optField(data, "liquidation_price"),
		StoplossPrice:    riskPrice(data, "stoploss", "stoploss_price"),
		TakeprofitPrice:  riskPrice(data, "takeprofit", "takeprofit_price"),
		Status:           PositionStatus(stringField(data, string(PositionOpen), "status")),
		CreatedAt:        ParseTime(data["created_at"]),
	}
}

// Exposure is the notional value, quantity * mark price. Computed on every
// call from the fields the exchange returned, never stored.
func (p Position) Exposure() string {
	return Dec(p.Quantity).Mul(Dec(p.MarkPrice)).String()
}

// PnLPercentage is the unrealized PnL as a percentage of margin. Zero
// margin yields zero rather than a division error.
func (p Position) PnLPercentage() float64 {
	margin := Dec(p.Margin)
	if margin.Sign() <= 0 {
		return 0
	}
	pct, _ := Dec(p.UnrealizedPnL).Div(margin).Mul(Dec("100")).Float64()
	return pct
}

// IsProfitable reports whether unrealized PnL is positive.
func (p Position) IsProfitable() bool { return Dec(p.UnrealizedPnL).Sign() > 0 }

func (p Position) IsLong() bool  { return p.Side == Long }
func (p Position) IsShort() bool { return p.Side == Short }

// RiskOrder carries stop-loss and take-profit settings for a position.
type RiskOrder struct {
	PositionID      string
	StoplossPrice   string
	TakeprofitPrice string
}

func (r RiskOrder) Payload() map[string]any {
	data := map[string]any{"order_source": "API"}
	if r.StoplossPrice != "" {
		data["is_stoploss"] = true
		data["stoploss_price"] = r.StoplossPrice
	}
	if r.TakeprofitPrice != "" {
		data["is_takeprofit"] = true
		data["takeprofit_price"] = r.TakeprofitPrice
	}
	return data
}
