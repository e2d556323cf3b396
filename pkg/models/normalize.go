package models

// The exchange API is not consistent about field names: some endpoints say
// "quantity" where others say "size", and "mark_price" where others say
// "market_price". Without normalization a missing synonym silently defaults
// to "0" and every derived figure (exposure, fill percentage) evaluates to
// zero. These helpers collapse the synonyms at the record boundary.

// NormalizeQuantity resolves quantity/size into a canonical quantity string.
func NormalizeQuantity(data map[string]any) string {
	if v, ok := data["quantity"]; ok && truthy(v) {
		return AsString(v)
	}
	if v, ok := data["size"]; ok && truthy(v) {
		return AsString(v)
	}
	return "0"
}

// NormalizeMarkPrice resolves mark_price/market_price into a canonical
// mark price string.
func NormalizeMarkPrice(data map[string]any) string {
	if v, ok := data["mark_price"]; ok && truthy(v) {
		return AsString(v)
	}
	if v, ok := data["market_price"]; ok && truthy(v) {
		return AsString(v)
	}
	return "0"
}

// riskPrice extracts a stop-loss or take-profit price that may arrive
// nested ({"stoploss": {"price": ...}}) or flat ("stoploss_price").
// The nested form wins when both are present.
func riskPrice(data map[string]any, nestedKey, flatKey string) string {
	if nested, ok := data[nestedKey].(map[string]any); ok {
		return optField(nested, "price")
	}
	return optField(data, flatKey)
}
