package models

// OrderType is the order direction. The exchange trades in LONG/SHORT
// terms rather than buy/sell.
type OrderType string

const (
	Long  OrderType = "LONG"
	Short OrderType = "SHORT"
)

// TriggerType selects how an order executes.
type TriggerType string

const (
	TriggerMarket TriggerType = "MARKET"
	TriggerLimit  TriggerType = "LIMIT"
)

// MarginType for futures positions. Only isolated margin is offered today.
type MarginType string

const (
	MarginIsolated MarginType = "ISOLATED"
)

// OrderStatus values as reported by the exchange.
type OrderStatus string

const (
	OrderCreated         OrderStatus = "CREATED"
	OrderOpen            OrderStatus = "OPEN"
	OrderFilled          OrderStatus = "FILLED"
	OrderPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderCancelled       OrderStatus = "CANCELLED"
	OrderExpired         OrderStatus = "EXPIRED"
)

// PositionStatus values as reported by the exchange.
type PositionStatus string

const (
	PositionOpen       PositionStatus = "OPEN"
	PositionClosed     PositionStatus = "CLOSED"
	PositionLiquidated PositionStatus = "LIQUIDATED"
)

// WalletType identifies the two wallets funds can move between.
type WalletType string

const (
	WalletSpot    WalletType = "SPOT"
	WalletFutures WalletType = "FUTURES"
)
