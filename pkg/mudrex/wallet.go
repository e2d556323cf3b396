package mudrex

import (
	"context"

	"github.com/mudrex/mudrex-go/pkg/models"
)

// WalletService reads balances and moves funds between the spot and
// futures wallets.
type WalletService struct {
	client *Client
}

// SpotBalance returns the spot wallet snapshot.
func (s *WalletService) SpotBalance(ctx context.Context) (models.WalletBalance, error) {
	resp, err := s.client.transport.Post(ctx, "/wallet/funds", nil)
	if err != nil {
		return models.WalletBalance{}, err
	}
	return models.WalletBalanceFromMap(payloadOf(resp)), nil
}

// FuturesBalance returns the futures wallet snapshot.
func (s *WalletService) FuturesBalance(ctx context.Context) (models.FuturesBalance, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/funds", nil)
	if err != nil {
		return models.FuturesBalance{}, err
	}
	return models.FuturesBalanceFromMap(payloadOf(resp)), nil
}

// Transfer moves amount between wallets.
func (s *WalletService) Transfer(ctx context.Context, from, to models.WalletType, amount string) (models.TransferResult, error) {
	if models.Dec(amount).Sign() <= 0 {
		return models.TransferResult{}, newError(KindValidation, "transfer amount must be positive")
	}
	body := map[string]any{
		"from_wallet_type": string(from),
		"to_wallet_type":   string(to),
		"amount":           amount,
	}
	resp, err := s.client.transport.Post(ctx, "/wallet/transfer", body)
	if err != nil {
		return models.TransferResult{}, err
	}
	result := models.TransferResultFromMap(payloadOf(resp))
	// The API does not always echo the transfer fields back; fill them
	// from the request. Reaching here means the transport saw a success.
	result.FromWallet, result.ToWallet = from, to
	if result.Amount == "0" {
		result.Amount = amount
	}
	result.Success = true
	return result, nil
}

// TransferToFutures moves amount from the spot wallet to futures.
func (s *WalletService) TransferToFutures(ctx context.Context, amount string) (models.TransferResult, error) {
	return s.Transfer(ctx, models.WalletSpot, models.WalletFutures, amount)
}

// TransferToSpot moves amount from the futures wallet to spot.
func (s *WalletService) TransferToSpot(ctx context.Context, amount string) (models.TransferResult, error) {
	return s.Transfer(ctx, models.WalletFutures, models.WalletSpot, amount)
}
