package models

// WalletBalance is a spot wallet snapshot.
type WalletBalance struct {
	Total             string
	Withdrawable      string
	Invested          string
	Rewards           string
	CoinInvestable    string
	CoinsetInvestable string
	VaultInvestable   string
	Currency          string
}

// Available is an alias for Withdrawable.
func (w WalletBalance) Available() string { return w.Withdrawable }

func WalletBalanceFromMap(data map[string]any) WalletBalance {
	return WalletBalance{
		Total:             stringField(data, "0", "total"),
		Withdrawable:      stringField(data, "0", "withdrawable", "available"),
		Invested:          stringField(data, "0", "invested"),
		Rewards:           stringField(data, "0", "rewards"),
		CoinInvestable:    stringField(data, "0", "coin_investable"),
		CoinsetInvestable: stringField(data, "0", "coinset_investable"),
		VaultInvestable:   stringField(data, "0", "vault_investable"),
		Currency:          stringField(data, "USDT", "currency"),
	}
}

// FuturesBalance is a futures wallet snapshot. Available is derived, never
// stored.
type FuturesBalance struct {
	Balance       string
	LockedAmount  string
	UnrealizedPnL string
	FirstTimeUser bool
}

// Available is the balance minus the amount locked in positions and orders.
func (f FuturesBalance) Available() string {
	return Dec(f.Balance).Sub(Dec(f.LockedAmount)).String()
}

func FuturesBalanceFromMap(data map[string]any) FuturesBalance {
	return FuturesBalance{
		Balance:       stringField(data, "0", "balance"),
		LockedAmount:  stringField(data, "0", "locked_amount"),
		UnrealizedPnL: stringField(data, "0", "unrealized_pnl", "pnl"),
		FirstTimeUser: boolField(data, false, "first_time_user"),
	}
}

// TransferResult reports the outcome of a wallet-to-wallet transfer.
type TransferResult struct {
	Success       bool
	FromWallet    WalletType
	ToWallet      WalletType
	Amount        string
	TransactionID string
}

func TransferResultFromMap(data map[string]any) TransferResult {
	return TransferResult{
		Success:       boolField(data, false, "success"),
		FromWallet:    WalletType(stringField(data, string(WalletSpot), "from_wallet_type")),
		ToWallet:      WalletType(stringField(data, string(WalletFutures), "to_wallet_type")),
		Amount:        stringField(data, "0", "amount"),
		TransactionID: optField(data, "transaction_id"),
	}
}
