package interfaces

import (
	"context"
	"time"

	"range-trading-bot/internal/types"
)

// Broker is the boundary to the remote brokerage. Implementations must be
// safe for concurrent use by any number of control loops and trackers; rate
// limiting, when needed, belongs behind this interface.
type Broker interface {
	// GetTradingStatus returns market availability for one instrument.
	GetTradingStatus(ctx context.Context, figi string) (types.TradingStatus, error)

	// GetLastPrice returns the last traded price of the instrument.
	GetLastPrice(ctx context.Context, figi string) (types.Quotation, error)

	// GetPortfolio returns the account's current positions.
	GetPortfolio(ctx context.Context, accountID string) ([]types.Position, error)

	// GetOpenOrders lists the account's active orders.
	GetOpenOrders(ctx context.Context, accountID string) ([]types.OrderRef, error)

	// GetCandles returns one-minute candles for [from, to) in time order.
	GetCandles(ctx context.Context, figi string, from, to time.Time) ([]types.Candle, error)

	// PostOrder submits a market order. Rejections surface as a
	// *types.RequestError.
	PostOrder(ctx context.Context, intent types.OrderIntent) (types.PostOrderResult, error)

	// GetOrderState returns the current state of a submitted order.
	GetOrderState(ctx context.Context, accountID, orderID string) (types.OrderState, error)
}
