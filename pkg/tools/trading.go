package tools

import (
	"context"

	"github.com/mudrex/mudrex-go/pkg/models"
	"github.com/mudrex/mudrex-go/pkg/mudrex"
)

func registerWalletTools(r *Registry, client *mudrex.Client) {
	r.register("get_spot_balance",
		"Get spot wallet balance including available funds and rewards.",
		func(ctx context.Context, _ Args) (any, error) {
			balance, err := client.Wallet.SpotBalance(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"total":        balance.Total,
				"available":    balance.Available(),
				"rewards":      balance.Rewards,
				"withdrawable": balance.Withdrawable,
				"currency":     balance.Currency,
			}, nil
		})

	r.register("get_futures_balance",
		"Get futures wallet balance including locked margin and unrealized PnL.",
		func(ctx context.Context, _ Args) (any, error) {
			balance, err := client.Wallet.FuturesBalance(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"balance":        balance.Balance,
				"locked_amount":  balance.LockedAmount,
				"available":      balance.Available(),
				"unrealized_pnl": balance.UnrealizedPnL,
			}, nil
		})

	r.register("transfer_to_futures",
		"Transfer funds from the spot wallet to the futures wallet.",
		func(ctx context.Context, args Args) (any, error) {
			result, err := client.Wallet.TransferToFutures(ctx, args.String("amount"))
			if err != nil {
				return nil, err
			}
			return transferData(result), nil
		})

	r.register("transfer_to_spot",
		"Transfer funds from the futures wallet to the spot wallet.",
		func(ctx context.Context, args Args) (any, error) {
			result, err := client.Wallet.TransferToSpot(ctx, args.String("amount"))
			if err != nil {
				return nil, err
			}
			return transferData(result), nil
		})
}

func transferData(result models.TransferResult) map[string]any {
	return map[string]any{
		"success":     result.Success,
		"amount":      result.Amount,
		"from_wallet": string(result.FromWallet),
		"to_wallet":   string(result.ToWallet),
	}
}

func registerAssetTools(r *Registry, client *mudrex.Client) {
	r.register("list_markets",
		"List all tradable futures markets with their specifications.",
		func(ctx context.Context, _ Args) (any, error) {
			assets, err := client.Assets.ListAll(ctx, mudrex.ListOptions{})
			if err != nil {
				return nil, err
			}
			out := make([]map[string]any, 0, len(assets))
			for _, a := range assets {
				out = append(out, map[string]any{
					"symbol":       a.Symbol,
					"asset_id":     a.AssetID,
					"min_quantity": a.MinQuantity,
					"max_quantity": a.MaxQuantity,
					"min_leverage": a.MinLeverage,
					"max_leverage": a.MaxLeverage,
					"maker_fee":    a.MakerFee,
					"taker_fee":    a.TakerFee,
					"price":        a.Price,
				})
			}
			return out, nil
		})

	r.register("get_market",
		"Get detailed specifications for a trading symbol, e.g. BTCUSDT.",
		func(ctx context.Context, args Args) (any, error) {
			a, err := client.Assets.Get(ctx, args.String("symbol"))
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"symbol":        a.Symbol,
				"asset_id":      a.AssetID,
				"min_quantity":  a.MinQuantity,
				"max_quantity":  a.MaxQuantity,
				"quantity_step": a.QuantityStep,
				"min_leverage":  a.MinLeverage,
				"max_leverage":  a.MaxLeverage,
				"maker_fee":     a.MakerFee,
				"taker_fee":     a.TakerFee,
				"price":         a.Price,
				"price_step":    a.PriceStep,
			}, nil
		})

	r.register("search_markets",
		"Search trading symbols by name pattern, e.g. BTC or DOGE.",
		func(ctx context.Context, args Args) (any, error) {
			assets, err := client.Assets.Search(ctx, args.String("query"))
			if err != nil {
				return nil, err
			}
			out := make([]map[string]any, 0, len(assets))
			for _, a := range assets {
				out = append(out, map[string]any{
					"symbol":       a.Symbol,
					"asset_id":     a.AssetID,
					"price":        a.Price,
					"max_leverage": a.MaxLeverage,
				})
			}
			return out, nil
		})
}

func registerLeverageTools(r *Registry, client *mudrex.Client) {
	r.register("get_leverage",
		"Get current leverage settings for a trading symbol.",
		func(ctx context.Context, args Args) (any, error) {
			symbol := args.String("symbol")
			lev, err := client.Leverage.Get(ctx, symbol)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"symbol":      symbol,
				"leverage":    lev.Leverage,
				"margin_type": string(lev.MarginType),
			}, nil
		})

	r.register("set_leverage",
		"Set leverage (and margin type) for a trading symbol.",
		func(ctx context.Context, args Args) (any, error) {
			symbol := args.String("symbol")
			marginType := models.MarginType(args.StringDefault("margin_type", string(models.MarginIsolated)))
			lev, err := client.Leverage.Set(ctx, symbol, args.String("leverage"), marginType)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"symbol":      symbol,
				"leverage":    lev.Leverage,
				"margin_type": string(lev.MarginType),
			}, nil
		})
}

func registerOrderTools(r *Registry, client *mudrex.Client) {
	r.register("create_market_order",
		"Place a market order that executes immediately at the current price.",
		func(ctx context.Context, args Args) (any, error) {
			order, err := client.Orders.CreateMarketOrder(ctx, orderParams(args))
			if err != nil {
				return nil, err
			}
			return orderData(order), nil
		})

	r.register("create_market_order_with_amount",
		"Place a market order sized by USD amount instead of base quantity.",
		func(ctx context.Context, args Args) (any, error) {
			order, err := client.Orders.CreateMarketOrderFromUSD(ctx, orderParams(args), args.String("amount"))
			if err != nil {
				return nil, err
			}
			return orderData(order), nil
		})

	r.register("create_limit_order",
		"Place a limit order that executes when the price reaches the given level.",
		func(ctx context.Context, args Args) (any, error) {
			p := orderParams(args)
			p.Price = args.String("price")
			order, err := client.Orders.CreateLimitOrder(ctx, p)
			if err != nil {
				return nil, err
			}
			return orderData(order), nil
		})

	r.register("list_open_orders",
		"Get all open (unfilled) orders.",
		func(ctx context.Context, _ Args) (any, error) {
			orders, err := client.Orders.ListOpen(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]map[string]any, 0, len(orders))
			for _, o := range orders {
				out = append(out, orderData(o))
			}
			return out, nil
		})

	r.register("get_order",
		"Get details of a specific order by ID.",
		func(ctx context.Context, args Args) (any, error) {
			order, err := client.Orders.Get(ctx, args.String("order_id"))
			if err != nil {
				return nil, err
			}
			return orderData(order), nil
		})

	r.register("cancel_order",
		"Cancel an open order by ID.",
		func(ctx context.Context, args Args) (any, error) {
			orderID := args.String("order_id")
			ok, err := client.Orders.Cancel(ctx, orderID)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": ok, "order_id": orderID}, nil
		})
}

func orderParams(args Args) mudrex.OrderParams {
	return mudrex.OrderParams{
		Symbol:          args.String("symbol"),
		AssetID:         args.String("asset_id"),
		Side:            models.OrderType(args.String("side")),
		Quantity:        args.String("quantity"),
		Leverage:        args.StringDefault("leverage", "1"),
		StoplossPrice:   args.String("stoploss_price"),
		TakeprofitPrice: args.String("takeprofit_price"),
	}
}

func orderData(o models.Order) map[string]any {
	return map[string]any{
		"order_id":     o.OrderID,
		"symbol":       o.Symbol,
		"side":         string(o.OrderType),
		"trigger_type": string(o.TriggerType),
		"quantity":     o.Quantity,
		"price":        o.Price,
		"leverage":     o.Leverage,
		"status":       string(o.Status),
	}
}

func registerPositionTools(r *Registry, client *mudrex.Client) {
	r.register("list_open_positions",
		"Get all open positions with live PnL data from the exchange.",
		func(ctx context.Context, _ Args) (any, error) {
			positions, err := client.Positions.ListOpen(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]map[string]any, 0, len(positions))
			for _, p := range positions {
				out = append(out, positionData(p))
			}
			return out, nil
		})

	r.register("get_position",
		"Get details of a specific position by ID.",
		func(ctx context.Context, args Args) (any, error) {
			p, err := client.Positions.Get(ctx, args.String("position_id"))
			if err != nil {
				return nil, err
			}
			return positionData(p), nil
		})

	r.register("close_position",
		"Fully close a position by ID.",
		func(ctx context.Context, args Args) (any, error) {
			positionID := args.String("position_id")
			ok, err := client.Positions.Close(ctx, positionID)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": ok, "position_id": positionID}, nil
		})

	r.register("set_position_stoploss",
		"Set a stop-loss price on a position.",
		func(ctx context.Context, args Args) (any, error) {
			positionID := args.String("position_id")
			price := args.String("price")
			ok, err := client.Positions.SetStopLoss(ctx, positionID, price)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": ok, "position_id": positionID, "stoploss_price": price}, nil
		})

	r.register("set_position_takeprofit",
		"Set a take-profit price on a position.",
		func(ctx context.Context, args Args) (any, error) {
			positionID := args.String("position_id")
			price := args.String("price")
			ok, err := client.Positions.SetTakeProfit(ctx, positionID, price)
			if err != nil {
				return nil, err
			}
			return map[string]any{"success": ok, "position_id": positionID, "takeprofit_price": price}, nil
		})

	r.register("set_position_risk_levels",
		"Set stop-loss and/or take-profit prices on a position.",
		func(ctx context.Context, args Args) (any, error) {
			positionID := args.String("position_id")
			sl := args.String("stoploss_price")
			tp := args.String("takeprofit_price")
			ok, err := client.Positions.SetRiskOrder(ctx, positionID, sl, tp)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"success":          ok,
				"position_id":      positionID,
				"stoploss_price":   sl,
				"takeprofit_price": tp,
			}, nil
		})
}

func positionData(p models.Position) map[string]any {
	return map[string]any{
		"position_id":    p.PositionID,
		"symbol":         p.Symbol,
		"side":           string(p.Side),
		"quantity":       p.Quantity,
		"entry_price":    p.EntryPrice,
		"mark_price":     p.MarkPrice,
		"leverage":       p.Leverage,
		"margin":         p.Margin,
		"unrealized_pnl": p.UnrealizedPnL,
		"pnl_percentage": p.PnLPercentage(),
		"exposure":       p.Exposure(),
	}
}
