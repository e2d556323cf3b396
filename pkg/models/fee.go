package models

import "time"

// FeeRecord is a single fee transaction.
type FeeRecord struct {
	FeeID     string
	AssetID   string
	Symbol    string
	FeeAmount string
	FeeType   string
	OrderID   string
	CreatedAt time.Time
}

func FeeRecordFromMap(data map[string]any) FeeRecord {
	return FeeRecord{
		FeeID:     optField(data, "fee_id", "id"),
		AssetID:   optField(data, "asset_id"),
		Symbol:    optField(data, "symbol", "asset_id"),
		FeeAmount: stringField(data, "0", "fee_amount"),
		FeeType:   stringField(data, "TRADING", "fee_type"),
		OrderID:   optField(data, "order_id"),
		CreatedAt: ParseTime(data["created_at"]),
	}
}
