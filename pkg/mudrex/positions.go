package mudrex

import (
	"context"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/shopspring/decimal"
)

const positionPageSize = 100

// PositionsService views and manages futures positions.
//
// Every read here goes straight to the exchange. Position data, including
// quantity and mark price, is never cached or derived from local state;
// a stale copy would let the client report exposure on a position that no
// longer exists. Any future caching layer must leave this service out.
type PositionsService struct {
	client *Client
}

// ListOpen returns all open positions, freshly fetched.
func (s *PositionsService) ListOpen(ctx context.Context) ([]models.Position, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/positions", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp, models.PositionFromMap), nil
}

// Get returns a single position by ID, freshly fetched.
func (s *PositionsService) Get(ctx context.Context, positionID string) (models.Position, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/positions/"+positionID, nil)
	if err != nil {
		return models.Position{}, err
	}
	return models.PositionFromMap(payloadOf(resp)), nil
}

// Close fully closes a position.
func (s *PositionsService) Close(ctx context.Context, positionID string) (bool, error) {
	resp, err := s.client.transport.Post(ctx, "/futures/positions/"+positionID+"/close", nil)
	if err != nil {
		return false, err
	}
	return successOf(resp), nil
}

// CloseAll closes open positions, optionally restricted to one symbol or
// to currently profitable positions. Individual failures are logged and
// skipped; the count of successful closes is returned.
func (s *PositionsService) CloseAll(ctx context.Context, symbol string, profitableOnly bool) (int, error) {
	positions, err := s.ListOpen(ctx)
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, p := range positions {
		if symbol != "" && p.Symbol != symbol && p.AssetID != symbol {
			continue
		}
		if profitableOnly && !p.IsProfitable() {
			continue
		}
		ok, err := s.Close(ctx, p.PositionID)
		if err != nil {
			s.client.logger.WithError(err).WithField("position_id", p.PositionID).
				Warn("Close failed, continuing")
			continue
		}
		if ok {
			closed++
		}
	}
	return closed, nil
}

// ClosePartial closes part of a position and returns the updated position.
func (s *PositionsService) ClosePartial(ctx context.Context, positionID, quantity string) (models.Position, error) {
	if models.Dec(quantity).Sign() <= 0 {
		return models.Position{}, newError(KindValidation, "partial close quantity must be positive")
	}
	resp, err := s.client.transport.Post(ctx, "/futures/positions/"+positionID+"/close/partial",
		map[string]any{"quantity": quantity})
	if err != nil {
		return models.Position{}, err
	}
	return models.PositionFromMap(payloadOf(resp)), nil
}

// Reverse closes the position and opens the opposite side with the same
// quantity, returning the new position.
func (s *PositionsService) Reverse(ctx context.Context, positionID string) (models.Position, error) {
	resp, err := s.client.transport.Post(ctx, "/futures/positions/"+positionID+"/reverse", nil)
	if err != nil {
		return models.Position{}, err
	}
	return models.PositionFromMap(payloadOf(resp)), nil
}

// SetRiskOrder attaches stop-loss and/or take-profit levels to a position.
func (s *PositionsService) SetRiskOrder(ctx context.Context, positionID, stoplossPrice, takeprofitPrice string) (bool, error) {
	if stoplossPrice == "" && takeprofitPrice == "" {
		return false, newError(KindValidation, "a stoploss or takeprofit price is required")
	}
	risk := models.RiskOrder{
		PositionID:      positionID,
		StoplossPrice:   stoplossPrice,
		TakeprofitPrice: takeprofitPrice,
	}
	resp, err := s.client.transport.Post(ctx, "/futures/positions/"+positionID+"/riskorder", risk.Payload())
	if err != nil {
		return false, err
	}
	return successOf(resp), nil
}

// SetStopLoss sets only the stop-loss level.
func (s *PositionsService) SetStopLoss(ctx context.Context, positionID, price string) (bool, error) {
	return s.SetRiskOrder(ctx, positionID, price, "")
}

// SetTakeProfit sets only the take-profit level.
func (s *PositionsService) SetTakeProfit(ctx context.Context, positionID, price string) (bool, error) {
	return s.SetRiskOrder(ctx, positionID, "", price)
}

// EditRiskOrder updates existing stop-loss/take-profit levels in place.
func (s *PositionsService) EditRiskOrder(ctx context.Context, positionID, stoplossPrice, takeprofitPrice string) (bool, error) {
	body := map[string]any{}
	if stoplossPrice != "" {
		body["stoploss_price"] = stoplossPrice
	}
	if takeprofitPrice != "" {
		body["takeprofit_price"] = takeprofitPrice
	}
	if len(body) == 0 {
		return false, newError(KindValidation, "a stoploss or takeprofit price is required")
	}
	resp, err := s.client.transport.Patch(ctx, "/futures/positions/"+positionID+"/riskorder", body)
	if err != nil {
		return false, err
	}
	return successOf(resp), nil
}

// History returns closed positions, draining all pages. A positive limit
// caps the result.
func (s *PositionsService) History(ctx context.Context, limit int) ([]models.Position, error) {
	return drainNumberedPages(ctx, s.client.transport, "/futures/positions/history", positionPageSize, limit, models.PositionFromMap)
}

// PnLSummary aggregates open-position PnL.
type PnLSummary struct {
	TotalUnrealizedPnL decimal.Decimal
	TotalMargin        decimal.Decimal
	PositionCount      int
	PnLPercentage      float64
}

// TotalPnL sums unrealized PnL and margin across open positions, skipping
// unparseable fields. The percentage is zero when no margin is deployed.
func (s *PositionsService) TotalPnL(ctx context.Context) (PnLSummary, error) {
	positions, err := s.ListOpen(ctx)
	if err != nil {
		return PnLSummary{}, err
	}
	totalPnL := decimal.Zero
	totalMargin := decimal.Zero
	for _, p := range positions {
		totalPnL = totalPnL.Add(models.Dec(p.UnrealizedPnL))
		totalMargin = totalMargin.Add(models.Dec(p.Margin))
	}
	summary := PnLSummary{
		TotalUnrealizedPnL: totalPnL,
		TotalMargin:        totalMargin,
		PositionCount:      len(positions),
	}
	if totalMargin.Sign() > 0 {
		pct, _ := totalPnL.Div(totalMargin).Mul(decimal.NewFromInt(100)).Float64()
		summary.PnLPercentage = pct
	}
	return summary, nil
}
