package mudrex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/mudrex/mudrex-go/pkg/quant"
)

const orderPageSize = 100

// The exchange requires order_price on the wire even for MARKET orders,
// which execute at the prevailing price regardless. This placeholder
// satisfies the field without constraining execution.
const marketPricePlaceholder = "999999999"

// OrdersService places and manages futures orders. Methods accept a
// trading symbol (preferred) or a legacy asset ID.
type OrdersService struct {
	client *Client
}

// OrderParams are the caller-facing parameters for placing an order.
// Symbol takes priority over AssetID when both are set.
type OrderParams struct {
	Symbol  string
	AssetID string

	Side     models.OrderType
	Quantity string
	Leverage string

	// Limit price; ignored for market orders placed via CreateMarketOrder.
	Price string

	StoplossPrice   string
	TakeprofitPrice string
	ReduceOnly      bool
}

// CreateMarketOrder places an order that executes immediately at the
// prevailing price.
func (s *OrdersService) CreateMarketOrder(ctx context.Context, p OrderParams) (models.Order, error) {
	p.Price = ""
	return s.createOrder(ctx, p, models.TriggerMarket)
}

// CreateLimitOrder places an order that executes once the market reaches
// p.Price.
func (s *OrdersService) CreateLimitOrder(ctx context.Context, p OrderParams) (models.Order, error) {
	if p.Price == "" {
		return models.Order{}, newError(KindValidation, "'price' is required for limit orders")
	}
	return s.createOrder(ctx, p, models.TriggerLimit)
}

// CreateMarketOrderFromUSD places a market order sized by quote-currency
// amount instead of base quantity. The current price and quantity step are
// fetched to derive the quantity; an amount below one step's notional is
// rejected with the minimum viable amount in the message.
func (s *OrdersService) CreateMarketOrderFromUSD(ctx context.Context, p OrderParams, usdAmount string) (models.Order, error) {
	identifier, _, err := resolveIdentifier(p.Symbol, p.AssetID)
	if err != nil {
		return models.Order{}, err
	}

	asset, err := s.client.Assets.Get(ctx, identifier)
	if err != nil {
		return models.Order{}, err
	}
	if asset.Price == "" {
		return models.Order{}, newError(KindValidation, fmt.Sprintf(
			"could not fetch a current price for %s to calculate the quantity; "+
				"use CreateMarketOrder with an explicit quantity instead", identifier))
	}

	price := models.Dec(asset.Price)
	amount := models.Dec(usdAmount)
	if price.Sign() <= 0 || amount.Sign() <= 0 {
		return models.Order{}, newError(KindValidation, fmt.Sprintf(
			"invalid amount %q or price %q for %s", usdAmount, asset.Price, identifier))
	}

	qty, _ := quant.OrderFromUSD(amount, price, models.Dec(asset.QuantityStep))
	if qty.Sign() <= 0 {
		minNotional := models.Dec(asset.MinQuantity).Mul(price)
		return models.Order{}, newError(KindValidation, fmt.Sprintf(
			"calculated quantity is 0 for amount $%s at price $%s; the minimum order value for %s is approximately $%s",
			usdAmount, asset.Price, identifier, minNotional.StringFixed(2)))
	}

	p.Quantity = qty.String()
	return s.CreateMarketOrder(ctx, p)
}

// resolveIdentifier picks the trading identifier, preferring the symbol
// over the legacy asset ID, and fails before any network call when
// neither is supplied.
func resolveIdentifier(symbol, assetID string) (identifier string, isSymbol bool, err error) {
	switch {
	case symbol != "":
		return symbol, true, nil
	case assetID != "":
		return assetID, false, nil
	default:
		return "", false, newError(KindValidation,
			"either 'symbol' or 'asset_id' is required, e.g. Symbol: \"BTCUSDT\"")
	}
}

func (s *OrdersService) createOrder(ctx context.Context, p OrderParams, trigger models.TriggerType) (models.Order, error) {
	identifier, isSymbol, err := resolveIdentifier(p.Symbol, p.AssetID)
	if err != nil {
		return models.Order{}, err
	}
	if p.Side == "" {
		return models.Order{}, newError(KindValidation,
			"'side' is required; use LONG to buy or SHORT to sell")
	}
	side := models.OrderType(strings.ToUpper(string(p.Side)))
	if side != models.Long && side != models.Short {
		return models.Order{}, newError(KindValidation, fmt.Sprintf(
			"invalid side %q; must be LONG (buy) or SHORT (sell)", p.Side))
	}
	if p.Quantity == "" {
		return models.Order{}, newError(KindValidation,
			"'quantity' is required; use CreateMarketOrderFromUSD to size by USD amount instead")
	}

	quantity, price, err := s.roundToAssetSteps(ctx, identifier, p.Quantity, p.Price)
	if err != nil {
		return models.Order{}, err
	}

	if price == "" && trigger == models.TriggerMarket {
		price = marketPricePlaceholder
	}

	leverage := p.Leverage
	if leverage == "" {
		leverage = "1"
	}

	req := models.OrderRequest{
		Quantity:        quantity,
		OrderType:       side,
		TriggerType:     trigger,
		Leverage:        leverage,
		OrderPrice:      price,
		StoplossPrice:   p.StoplossPrice,
		TakeprofitPrice: p.TakeprofitPrice,
		ReduceOnly:      p.ReduceOnly,
	}
	return s.submit(ctx, identifier, isSymbol, req)
}

// roundToAssetSteps fetches the asset specification and rounds quantity
// (and price, when given) to its steps. Rounding is a best-effort
// enhancement: if the asset lookup fails for a reason other than an
// unknown identifier, the caller-supplied values pass through unchanged.
// A quantity below the asset minimum is rejected.
func (s *OrdersService) roundToAssetSteps(ctx context.Context, identifier, quantity, price string) (string, string, error) {
	asset, err := s.client.Assets.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", newError(KindNotFound, fmt.Sprintf(
				"symbol %q not found; try client.Assets.Search(%q) to find valid symbols, "+
					"or client.Assets.ListAll() to see all available pairs",
				identifier, identifierPrefix(identifier)))
		}
		s.client.logger.WithError(err).WithField("identifier", identifier).
			Debug("Asset lookup failed, skipping quantity rounding")
		return quantity, price, nil
	}

	step := models.Dec(asset.QuantityStep)
	if step.Sign() > 0 {
		rounded := quant.RoundToStep(models.Dec(quantity), step)
		if rounded.LessThan(models.Dec(asset.MinQuantity)) {
			return "", "", newError(KindValidation, fmt.Sprintf(
				"quantity %s is below the minimum %s for %s; increase your quantity or order amount",
				quantity, asset.MinQuantity, identifier))
		}
		quantity = rounded.String()
	}

	if price != "" && asset.PriceStep != "" {
		if tick := models.Dec(asset.PriceStep); tick.Sign() > 0 {
			price = quant.RoundToStep(models.Dec(price), tick).String()
		}
	}
	return quantity, price, nil
}

func identifierPrefix(identifier string) string {
	if len(identifier) > 3 {
		return identifier[:3]
	}
	return identifier
}

// Create submits a fully-specified OrderRequest without any rounding or
// derivation, for callers that need raw control.
func (s *OrdersService) Create(ctx context.Context, symbol, assetID string, req models.OrderRequest) (models.Order, error) {
	identifier, isSymbol, err := resolveIdentifier(symbol, assetID)
	if err != nil {
		return models.Order{}, err
	}
	return s.submit(ctx, identifier, isSymbol, req)
}

// submit posts the order and interprets the response. The API does not
// always echo the identifier, so it is injected back into the payload
// before the Order record is built.
func (s *OrdersService) submit(ctx context.Context, identifier string, isSymbol bool, req models.OrderRequest) (models.Order, error) {
	resp, err := s.client.transport.Post(ctx, "/futures/"+identifier+"/order", req.Payload())
	if err != nil {
		return models.Order{}, err
	}
	data := payloadOf(resp)
	data["asset_id"] = identifier
	if isSymbol || models.AsString(data["symbol"]) == "" {
		data["symbol"] = identifier
	}

	order := models.OrderFromMap(data)
	s.client.logger.WithFields(map[string]any{
		"order_id": order.OrderID,
		"symbol":   order.Symbol,
		"side":     order.OrderType,
		"quantity": order.Quantity,
	}).Info("Order submitted")
	return order, nil
}

// ListOpen returns all open orders.
func (s *OrdersService) ListOpen(ctx context.Context) ([]models.Order, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/orders", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp, models.OrderFromMap), nil
}

// Get returns a single order by ID.
func (s *OrdersService) Get(ctx context.Context, orderID string) (models.Order, error) {
	resp, err := s.client.transport.Get(ctx, "/futures/orders/"+orderID, nil)
	if err != nil {
		return models.Order{}, err
	}
	return models.OrderFromMap(payloadOf(resp)), nil
}

// History returns historical orders, draining all pages. A positive limit
// caps the result to exactly that many orders.
func (s *OrdersService) History(ctx context.Context, limit int) ([]models.Order, error) {
	return drainNumberedPages(ctx, s.client.transport, "/futures/orders/history", orderPageSize, limit, models.OrderFromMap)
}

// Cancel cancels an open order.
func (s *OrdersService) Cancel(ctx context.Context, orderID string) (bool, error) {
	resp, err := s.client.transport.Delete(ctx, "/futures/orders/"+orderID)
	if err != nil {
		return false, err
	}
	return successOf(resp), nil
}

// CancelAll cancels every open order, optionally restricted to one symbol.
// Individual failures are logged and skipped; the count of successful
// cancellations is returned.
func (s *OrdersService) CancelAll(ctx context.Context, symbol string) (int, error) {
	orders, err := s.ListOpen(ctx)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, o := range orders {
		if symbol != "" && o.Symbol != symbol && o.AssetID != symbol {
			continue
		}
		ok, err := s.Cancel(ctx, o.OrderID)
		if err != nil {
			s.client.logger.WithError(err).WithField("order_id", o.OrderID).
				Warn("Cancel failed, continuing")
			continue
		}
		if ok {
			cancelled++
		}
	}
	return cancelled, nil
}

// Amend updates the price and/or quantity of an existing order. Empty
// fields are left untouched.
func (s *OrdersService) Amend(ctx context.Context, orderID, price, quantity string) (models.Order, error) {
	body := map[string]any{}
	if price != "" {
		body["order_price"] = price
	}
	if quantity != "" {
		body["quantity"] = quantity
	}
	if len(body) == 0 {
		return models.Order{}, newError(KindValidation, "amend requires a new price or quantity")
	}
	resp, err := s.client.transport.Patch(ctx, "/futures/orders/"+orderID, body)
	if err != nil {
		return models.Order{}, err
	}
	return models.OrderFromMap(payloadOf(resp)), nil
}

// decodeList decodes a list-bearing response with envelope tolerance.
func decodeList[T any](resp any, decode func(map[string]any) T) []T {
	items := itemsOf(resp)
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, decode(item))
	}
	return out
}
