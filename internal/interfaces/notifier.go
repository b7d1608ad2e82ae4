package interfaces

import "context"

// Notifier delivers operator alerts. Delivery is best-effort: failures are
// logged by the implementation and never surface into the caller's decision
// path.
type Notifier interface {
	Post(ctx context.Context, text string)
}
