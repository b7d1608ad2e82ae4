package interfaces

import (
	"context"

	"range-trading-bot/internal/types"
)

// OrderStore persists order outcomes. Both operations are idempotent: a
// record may be created or moved to the same terminal status more than once
// without corruption. Implementations must be safe for concurrent writers.
type OrderStore interface {
	CreateOrderRecord(ctx context.Context, rec types.OrderRecord) error
	UpdateOrderStatus(ctx context.Context, orderID string, status types.OrderStatus) error
}
