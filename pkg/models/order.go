package models

import "time"

// Order is a confirmed, server-assigned order record. It is only ever
// re-fetched, never mutated locally; order state lives exchange-side.
type Order struct {
	OrderID         string
	AssetID         string
	Symbol          string
	OrderType       OrderType
	TriggerType     TriggerType
	Status          OrderStatus
	Quantity        string
	FilledQuantity  string
	Price           string
	Leverage        string
	StoplossPrice   string
	TakeprofitPrice string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func OrderFromMap(data map[string]any) Order {
	return Order{
		OrderID:         optField(data, "order_id", "id"),
		AssetID:         optField(data, "asset_id"),
		Symbol:          optField(data, "symbol", "asset_id"),
		OrderType:       OrderType(stringField(data, string(Long), "order_type")),
		TriggerType:     TriggerType(stringField(data, string(TriggerMarket), "trigger_type")),
		Status:          OrderStatus(stringField(data, string(OrderOpen), "status")),
		Quantity:        NormalizeQuantity(data),
		FilledQuantity:  normalizeFilled(data),
		Price:           stringField(data, "0", "price", "order_price"),
		Leverage:        stringField(data, "1", "leverage"),
		StoplossPrice:   optField(data, "stoploss_price"),
		TakeprofitPrice: optField(data, "takeprofit_price"),
		CreatedAt:       ParseTime(data["created_at"]),
		UpdatedAt:       ParseTime(data["updated_at"]),
	}
}

func normalizeFilled(data map[string]any) string {
	if v, ok := data["filled_quantity"]; ok && truthy(v) {
		return AsString(v)
	}
	if v, ok := data["filled_size"]; ok && truthy(v) {
		return AsString(v)
	}
	return "0"
}

// IsFilled reports whether the order is fully filled.
func (o Order) IsFilled() bool { return o.Status == OrderFilled }

// IsOpen reports whether the order can still fill.
func (o Order) IsOpen() bool {
	switch o.Status {
	case OrderOpen, OrderCreated, OrderPartiallyFilled:
		return true
	}
	return false
}

// FillPercentage is derived from quantity and filled quantity; it is never
// stored. Unparseable fields degrade to zero.
func (o Order) FillPercentage() float64 {
	qty := Dec(o.Quantity)
	if qty.Sign() <= 0 {
		return 0
	}
	pct, _ := Dec(o.FilledQuantity).Div(qty).Mul(Dec("100")).Float64()
	return pct
}

// OrderRequest is the outbound order shape, kept separate from Order so
// request building stays apart from response parsing.
type OrderRequest struct {
	Quantity        string
	OrderType       OrderType
	TriggerType     TriggerType
	Leverage        string
	OrderPrice      string // required for LIMIT orders
	StoplossPrice   string
	TakeprofitPrice string
	ReduceOnly      bool
}

// Payload converts the request to the wire format. The exchange insists on
// JSON numbers for leverage, quantity and prices even though it returns
// them as strings.
func (r OrderRequest) Payload() map[string]any {
	data := map[string]any{
		"leverage":     Float(r.Leverage),
		"quantity":     Float(r.Quantity),
		"order_type":   string(r.OrderType),
		"trigger_type": string(r.TriggerType),
		"reduce_only":  r.ReduceOnly,
	}
	if r.OrderPrice != "" {
		data["order_price"] = Float(r.OrderPrice)
	}
	if r.StoplossPrice != "" {
		data["is_stoploss"] = true
		data["stoploss_price"] = Float(r.StoplossPrice)
	}
	if r.TakeprofitPrice != "" {
		data["is_takeprofit"] = true
		data["takeprofit_price"] = Float(r.TakeprofitPrice)
	}
	return data
}
