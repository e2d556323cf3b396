package mudrex

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/mudrex/mudrex-go/pkg/models"
)

const assetPageSize = 100

// AssetsService discovers tradable futures instruments. The full catalog
// is drained once and cached on the service; the cache is replaced
// wholesale on refresh and guarded for concurrent use. It is explicitly a
// cache of instrument specifications, never of position state.
type AssetsService struct {
	client *Client

	mu       sync.Mutex
	catalog  []models.Asset
	bySymbol map[string]models.Asset
}

// ListOptions control catalog sorting.
type ListOptions struct {
	SortBy    string
	SortOrder string // "asc" or "desc"
	Refresh   bool
}

// ListAll returns every tradable futures contract, draining all catalog
// pages. Results are cached until Refresh is requested or the cache is
// invalidated.
func (s *AssetsService) ListAll(ctx context.Context, opts ListOptions) ([]models.Asset, error) {
	s.mu.Lock()
	cached := s.catalog
	s.mu.Unlock()

	if cached != nil && !opts.Refresh {
		return sortAssets(cached, opts), nil
	}

	base := url.Values{}
	if opts.SortBy != "" {
		base.Set("sort_by", opts.SortBy)
		order := opts.SortOrder
		if order == "" {
			order = "asc"
		}
		base.Set("sort_order", order)
	}

	assets, err := drainOffsetPages(ctx, s.client.transport, "/futures", base, assetPageSize, 0, models.AssetFromMap)
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		index[a.Symbol] = a
	}

	s.mu.Lock()
	s.catalog = assets
	s.bySymbol = index
	s.mu.Unlock()

	return assets, nil
}

func sortAssets(assets []models.Asset, opts ListOptions) []models.Asset {
	if opts.SortBy == "" {
		return assets
	}
	out := make([]models.Asset, len(assets))
	copy(out, assets)
	desc := strings.EqualFold(opts.SortOrder, "desc")
	sort.SliceStable(out, func(i, j int) bool {
		a, b := assetSortKey(out[i], opts.SortBy), assetSortKey(out[j], opts.SortBy)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func assetSortKey(a models.Asset, field string) string {
	switch field {
	case "symbol":
		return a.Symbol
	case "name":
		return a.Name
	case "asset_id":
		return a.AssetID
	case "base_currency":
		return a.BaseCurrency
	default:
		return a.Symbol
	}
}

// Get fetches detailed specifications for a trading symbol.
func (s *AssetsService) Get(ctx context.Context, symbol string) (models.Asset, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/"+symbol, nil)
	if err != nil {
		return models.Asset{}, err
	}
	return models.AssetFromMap(payloadOf(resp)), nil
}

// GetByID fetches an asset by its internal asset ID. Most callers should
// use Get with a symbol.
func (s *AssetsService) GetByID(ctx context.Context, assetID string) (models.Asset, error) {
	return s.Get(ctx, assetID)
}

// GetTicker returns current price data for a symbol.
func (s *AssetsService) GetTicker(ctx context.Context, symbol string) (models.Ticker, error) {
	asset, err := s.Get(ctx, symbol)
	if err != nil {
		return models.Ticker{}, err
	}
	price := asset.Price
	if price == "" {
		price = "0"
	}
	return models.Ticker{Symbol: asset.Symbol, Price: price}, nil
}

// GetPrice returns just the current price for a symbol.
func (s *AssetsService) GetPrice(ctx context.Context, symbol string) (string, error) {
	ticker, err := s.GetTicker(ctx, symbol)
	if err != nil {
		return "", err
	}
	return ticker.Price, nil
}

// Search matches assets whose symbol or name contains the query,
// case-insensitively. Operates on the cached catalog.
func (s *AssetsService) Search(ctx context.Context, query string) ([]models.Asset, error) {
	assets, err := s.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	q := strings.ToUpper(query)
	var matches []models.Asset
	for _, a := range assets {
		if strings.Contains(strings.ToUpper(a.Symbol), q) ||
			(a.Name != "" && strings.Contains(strings.ToUpper(a.Name), q)) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// Exists reports whether a trading symbol is known to the exchange.
func (s *AssetsService) Exists(ctx context.Context, symbol string) bool {
	_, err := s.Get(ctx, symbol)
	return err == nil
}

// ByLeverage filters the catalog to assets supporting at least minLeverage
// and, when maxLeverage > 0, at most maxLeverage.
func (s *AssetsService) ByLeverage(ctx context.Context, minLeverage, maxLeverage int) ([]models.Asset, error) {
	assets, err := s.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	var out []models.Asset
	for _, a := range assets {
		lev := int(models.Float(a.MaxLeverage))
		if lev >= minLeverage && (maxLeverage <= 0 || lev <= maxLeverage) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Active returns the currently tradable subset of the catalog.
func (s *AssetsService) Active(ctx context.Context) ([]models.Asset, error) {
	assets, err := s.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	var out []models.Asset
	for _, a := range assets {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

// Cached returns the cached specification for symbol without a network
// call. ok is false until the catalog has been drained.
func (s *AssetsService) Cached(symbol string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.bySymbol[symbol]
	return a, ok
}

// InvalidateCache drops the cached catalog; the next ListAll re-fetches.
func (s *AssetsService) InvalidateCache() {
	s.mu.Lock()
	s.catalog = nil
	s.bySymbol = nil
	s.mu.Unlock()
}
