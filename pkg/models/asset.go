package models

// Asset describes a tradable futures instrument. All monetary and quantity
// fields are decimal strings as delivered by the exchange; optional fields
// are empty when absent.
type Asset struct {
	AssetID       string
	Symbol        string
	BaseCurrency  string
	QuoteCurrency string
	MinQuantity   string
	MaxQuantity   string
	QuantityStep  string
	MinLeverage   string
	MaxLeverage   string
	MakerFee      string
	TakerFee      string
	IsActive      bool

	// Price precision fields, used for order rounding.
	PriceStep string
	MinPrice  string
	MaxPrice  string

	// Last known market data.
	Price string
	Name  string
}

// AssetFromMap builds an Asset from a raw exchange payload, resolving the
// legacy field names (id, min_contract/max_contract, trading_fee_perc).
func AssetFromMap(data map[string]any) Asset {
	return Asset{
		AssetID:       optField(data, "asset_id", "id"),
		Symbol:        optField(data, "symbol"),
		BaseCurrency:  optField(data, "base_currency"),
		QuoteCurrency: stringField(data, "USDT", "quote_currency"),
		MinQuantity:   stringField(data, "0", "min_quantity", "min_contract"),
		MaxQuantity:   stringField(data, "0", "max_quantity", "max_contract"),
		QuantityStep:  stringField(data, "0", "quantity_step"),
		MinLeverage:   stringField(data, "1", "min_leverage"),
		MaxLeverage:   stringField(data, "100", "max_leverage"),
		MakerFee:      stringField(data, "0", "maker_fee"),
		TakerFee:      stringField(data, "0", "taker_fee", "trading_fee_perc"),
		IsActive:      boolField(data, true, "is_active"),
		PriceStep:     optField(data, "price_step"),
		MinPrice:      optField(data, "min_price"),
		MaxPrice:      optField(data, "max_price"),
		Price:         optField(data, "price"),
		Name:          optField(data, "name"),
	}
}

// Ticker is a point-in-time price snapshot for a symbol.
type Ticker struct {
	Symbol    string
	Price     string
	Bid       string
	Ask       string
	Volume24h string
	Change24h string
	High24h   string
	Low24h    string
}

func TickerFromMap(data map[string]any) Ticker {
	return Ticker{
		Symbol:    optField(data, "symbol"),
		Price:     stringField(data, "0", "price", "last_price"),
		Bid:       optField(data, "bid"),
		Ask:       optField(data, "ask"),
		Volume24h: optField(data, "volume_24h", "volume"),
		Change24h: optField(data, "change_24h", "price_change_percent"),
		High24h:   optField(data, "high_24h", "high"),
		Low24h:    optField(data, "low_24h", "low"),
	}
}

// Leverage holds the current leverage settings for an asset.
type Leverage struct {
	AssetID    string
	Symbol     string
	Leverage   string
	MarginType MarginType
}

func LeverageFromMap(data map[string]any) Leverage {
	return Leverage{
		AssetID:    optField(data, "asset_id", "symbol"),
		Symbol:     optField(data, "symbol"),
		Leverage:   stringField(data, "1", "leverage"),
		MarginType: MarginType(stringField(data, string(MarginIsolated), "margin_type")),
	}
}
