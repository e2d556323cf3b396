package mudrex

import (
	"context"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/shopspring/decimal"
)

const feePageSize = 100

// FeesService retrieves trading fee history.
type FeesService struct {
	client *Client
}

// History returns fee transactions, draining all pages. A positive limit
// caps the result; symbol filters to one trading pair. The symbol filter
// is applied client-side, so a capped, filtered call may return fewer than
// limit records.
func (s *FeesService) History(ctx context.Context, limit int, symbol string) ([]models.FeeRecord, error) {
	fees, err := drainNumberedPages(ctx, s.client.transport, "/futures/fee/history", feePageSize, feeDrainCap(limit, symbol), models.FeeRecordFromMap)
	if err != nil {
		return nil, err
	}
	if symbol != "" {
		filtered := fees[:0]
		for _, f := range fees {
			if f.Symbol == symbol || f.AssetID == symbol {
				filtered = append(filtered, f)
			}
		}
		fees = filtered
	}
	if limit > 0 && len(fees) > limit {
		fees = fees[:limit]
	}
	return fees, nil
}

// feeDrainCap decides how many records to pull before filtering. With a
// symbol filter the cap cannot be applied during the drain, because
// matching records may sit on later pages.
func feeDrainCap(limit int, symbol string) int {
	if symbol != "" {
		return 0
	}
	return limit
}

// FeeSummary aggregates fee history.
type FeeSummary struct {
	TotalFees  decimal.Decimal
	FeeCount   int
	AverageFee decimal.Decimal
}

// TotalFees sums the fee history, skipping unparseable amounts. An empty
// history yields a zero average.
func (s *FeesService) TotalFees(ctx context.Context, symbol string) (FeeSummary, error) {
	fees, err := s.History(ctx, 0, symbol)
	if err != nil {
		return FeeSummary{}, err
	}
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(models.Dec(f.FeeAmount))
	}
	summary := FeeSummary{TotalFees: total, FeeCount: len(fees)}
	if len(fees) > 0 {
		summary.AverageFee = total.Div(decimal.NewFromInt(int64(len(fees))))
	}
	return summary, nil
}

// BySymbol breaks total fees down per trading symbol, falling back to the
// asset ID for records without one. Unparseable amounts are skipped.
func (s *FeesService) BySymbol(ctx context.Context) (map[string]decimal.Decimal, error) {
	fees, err := s.History(ctx, 0, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal)
	for _, f := range fees {
		key := f.Symbol
		if key == "" {
			key = f.AssetID
		}
		if key == "" {
			continue
		}
		out[key] = out[key].Add(models.Dec(f.FeeAmount))
	}
	return out, nil
}
