package mudrex

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotBalance(t *testing.T) {
	t.Parallel()
	client, ft := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"data": map[string]any{
			"total":        "1500",
			"withdrawable": "1200",
		}}, nil
	})

	balance, err := client.Wallet.SpotBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, ft.calls[0].Method, "the funds endpoint is POST-only")
	assert.Equal(t, "/wallet/funds", ft.calls[0].Path)
	assert.Equal(t, "1200", balance.Available())
}

func TestFuturesBalance(t *testing.T) {
	t.Parallel()
	client, ft := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"data": map[string]any{
			"balance":       "1000",
			"locked_amount": "400",
		}}, nil
	})

	balance, err := client.Wallet.FuturesBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, ft.calls[0].Method)
	assert.Equal(t, "/futures/funds", ft.calls[0].Path)
	assert.Equal(t, "600", balance.Available())
}

func TestTransferValidatesAmount(t *testing.T) {
	t.Parallel()
	client, ft := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"success": true}, nil
	})
	ctx := context.Background()

	for _, amount := range []string{"", "0", "-5", "abc"} {
		_, err := client.Wallet.TransferToFutures(ctx, amount)
		assert.True(t, errors.Is(err, ErrValidation), "amount %q", amount)
	}
	assert.Empty(t, ft.calls)
}

func TestTransferEchoFill(t *testing.T) {
	t.Parallel()
	// The API acknowledges transfers without echoing the details back.
	client, ft := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"success": true}, nil
	})

	result, err := client.Wallet.TransferToFutures(context.Background(), "100")
	require.NoError(t, err)

	sent := ft.calls[0].Body.(map[string]any)
	assert.Equal(t, "/wallet/transfer", ft.calls[0].Path)
	assert.Equal(t, "SPOT", sent["from_wallet_type"])
	assert.Equal(t, "FUTURES", sent["to_wallet_type"])
	assert.Equal(t, "100", sent["amount"])

	assert.True(t, result.Success)
	assert.Equal(t, models.WalletSpot, result.FromWallet)
	assert.Equal(t, models.WalletFutures, result.ToWallet)
	assert.Equal(t, "100", result.Amount, "amount filled from the request")
}

func TestTransferToSpotDirection(t *testing.T) {
	t.Parallel()
	client, ft := newTestClient(func(method, path string, query url.Values, body any) (any, error) {
		return map[string]any{"success": true}, nil
	})

	_, err := client.Wallet.TransferToSpot(context.Background(), "50")
	require.NoError(t, err)

	sent := ft.calls[0].Body.(map[string]any)
	assert.Equal(t, "FUTURES", sent["from_wallet_type"])
	assert.Equal(t, "SPOT", sent["to_wallet_type"])
}
