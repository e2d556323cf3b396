package mudrex

import (
	"context"

	"github.com/mudrex/mudrex-go/pkg/models"
)

// LeverageService reads and updates per-asset leverage settings.
type LeverageService struct {
	client *Client
}

// Get returns the current leverage settings for a symbol.
func (s *LeverageService) Get(ctx context.Context, symbol string) (models.Leverage, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/"+symbol+"/leverage", nil)
	if err != nil {
		return models.Leverage{}, err
	}
	lev := models.LeverageFromMap(payloadOf(resp))
	if lev.Symbol == "" {
		lev.Symbol = symbol
	}
	return lev, nil
}

// Set updates leverage and margin type for a symbol. Only isolated margin
// is accepted by the exchange today.
func (s *LeverageService) Set(ctx context.Context, symbol, leverage string, marginType models.MarginType) (models.Leverage, error) {
	if models.Dec(leverage).Sign() <= 0 {
		return models.Leverage{}, newError(KindValidation, "leverage must be a positive number")
	}
	if marginType == "" {
		marginType = models.MarginIsolated
	}
	body := map[string]any{
		"leverage":    models.Float(leverage),
		"margin_type": string(marginType),
	}
	resp, err := s.client.transport.Post(ctx, "/futures/"+symbol+"/leverage", body)
	if err != nil {
		return models.Leverage{}, err
	}
	lev := models.LeverageFromMap(payloadOf(resp))
	if lev.Symbol == "" {
		lev.Symbol = symbol
	}
	return lev, nil
}
