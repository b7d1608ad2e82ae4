package brokerobs

import (
	"context"
	"time"

	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/trace"
	"range-trading-bot/internal/types"
)

// observableBroker wraps a Broker with observability (logging & tracing)
type observableBroker struct {
	broker interfaces.Broker
}

// Compile-time interface check
var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap wraps a broker with observability middleware
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{
		broker: broker,
	}
}

func (ob *observableBroker) GetTradingStatus(ctx context.Context, figi string) (types.TradingStatus, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetTradingStatus")
	defer span.End()

	st, err := ob.broker.GetTradingStatus(ctx, figi)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch trading status", err, "figi", figi)
		return types.TradingStatus{}, err
	}

	logger.DebugSkip(ctx, 1, "Trading status fetched",
		"figi", figi,
		"market_order_available", st.MarketOrderAvailable,
		"api_trade_available", st.APITradeAvailable,
	)
	return st, nil
}

func (ob *observableBroker) GetLastPrice(ctx context.Context, figi string) (types.Quotation, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetLastPrice")
	defer span.End()

	price, err := ob.broker.GetLastPrice(ctx, figi)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch last price", err, "figi", figi)
		return types.Quotation{}, err
	}

	logger.DebugSkip(ctx, 1, "Last price fetched", "figi", figi, "units", price.Units, "nano", price.Nano)
	return price, nil
}

func (ob *observableBroker) GetPortfolio(ctx context.Context, accountID string) ([]types.Position, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetPortfolio")
	defer span.End()

	positions, err := ob.broker.GetPortfolio(ctx, accountID)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch portfolio", err, "account_id", accountID)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Portfolio fetched", "account_id", accountID, "positions", len(positions))
	return positions, nil
}

func (ob *observableBroker) GetOpenOrders(ctx context.Context, accountID string) ([]types.OrderRef, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetOpenOrders")
	defer span.End()

	orders, err := ob.broker.GetOpenOrders(ctx, accountID)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to list open orders", err, "account_id", accountID)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Open orders listed", "account_id", accountID, "count", len(orders))
	return orders, nil
}

func (ob *observableBroker) GetCandles(ctx context.Context, figi string, from, to time.Time) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetCandles")
	defer span.End()

	candles, err := ob.broker.GetCandles(ctx, figi, from, to)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch candles", err, "figi", figi)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched", "figi", figi, "count", len(candles))
	return candles, nil
}

func (ob *observableBroker) PostOrder(ctx context.Context, intent types.OrderIntent) (types.PostOrderResult, error) {
	ctx, span := trace.StartSpan(ctx, "broker.PostOrder")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Submitting order",
		"figi", intent.Figi,
		"direction", intent.Direction,
		"quantity", intent.Quantity,
		"client_order_id", intent.OrderID,
	)

	result, err := ob.broker.PostOrder(ctx, intent)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to submit order", err,
			"figi", intent.Figi,
			"direction", intent.Direction,
			"quantity", intent.Quantity,
		)
		return types.PostOrderResult{}, err
	}

	logger.InfoSkip(ctx, 1, "Order submitted",
		"figi", intent.Figi,
		"order_id", result.OrderID,
		"status", result.Status,
	)
	return result, nil
}

func (ob *observableBroker) GetOrderState(ctx context.Context, accountID, orderID string) (types.OrderState, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetOrderState")
	defer span.End()

	state, err := ob.broker.GetOrderState(ctx, accountID, orderID)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch order state", err, "order_id", orderID)
		return types.OrderState{}, err
	}

	logger.DebugSkip(ctx, 1, "Order state fetched", "order_id", orderID, "status", state.Status)
	return state, nil
}
