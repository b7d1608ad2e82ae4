// Package tracker follows a submitted order to its terminal status and
// persists the outcome. A tracker is a detached unit of work: the control
// loop spawns it and never waits for it, and abandoning it on shutdown
// leaves the record in its last known status, which a later run observing
// the same order can correct.
package tracker

import (
	"context"
	"time"

	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/metrics"
	"range-trading-bot/internal/quotation"
	"range-trading-bot/internal/trace"
	"range-trading-bot/internal/types"
)

const defaultPollInterval = 10 * time.Second

type Tracker struct {
	broker   interfaces.Broker
	store    interfaces.OrderStore
	interval time.Duration
}

func New(broker interfaces.Broker, store interfaces.OrderStore) *Tracker {
	return NewWithInterval(broker, store, defaultPollInterval)
}

func NewWithInterval(broker interfaces.Broker, store interfaces.OrderStore, interval time.Duration) *Tracker {
	return &Tracker{broker: broker, store: store, interval: interval}
}

// Track polls the order until a terminal status is observed, then persists
// it. Blocking; spawn with go. The order record is created on the first
// successful poll. Definitive not-found or credential failures abandon the
// tracker; transient failures are retried at the fixed poll interval.
func (t *Tracker) Track(ctx context.Context, accountID, orderID string) {
	ctx, span := trace.StartSpan(ctx, "tracker.Track")
	defer span.End()

	recorded := false
	for {
		state, err := t.broker.GetOrderState(ctx, accountID, orderID)
		switch {
		case err == nil:
			metrics.TrackerPolls.Inc()
			if !recorded {
				if err := t.createRecord(ctx, state); err != nil {
					logger.ErrorWithErr(ctx, "Failed to persist order record", err, "order_id", orderID)
				} else {
					recorded = true
				}
			}
			if state.Status.Terminal() {
				t.finish(ctx, orderID, state.Status)
				return
			}
			logger.Debug(ctx, "Order still in flight", "order_id", orderID, "status", state.Status)

		case types.IsNotFound(err) || types.IsUnauthenticated(err):
			// Polling again cannot succeed.
			logger.ErrorWithErr(ctx, "Abandoning order tracking", err, "order_id", orderID)
			metrics.TrackerOutcomes.WithLabelValues("abandoned").Inc()
			return

		default:
			metrics.TrackerPolls.Inc()
			logger.Warn(ctx, "Order state poll failed, will retry", "order_id", orderID, "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Order tracking stopped by shutdown", "order_id", orderID)
			metrics.TrackerOutcomes.WithLabelValues("abandoned").Inc()
			return
		case <-time.After(t.interval):
		}
	}
}

func (t *Tracker) createRecord(ctx context.Context, state types.OrderState) error {
	return t.store.CreateOrderRecord(ctx, types.OrderRecord{
		OrderID:   state.OrderID,
		Figi:      state.Figi,
		Direction: state.Direction,
		Price:     quotation.MoneyToFloat(state.TotalAmount),
		Quantity:  state.LotsRequested,
		Status:    state.Status,
	})
}

func (t *Tracker) finish(ctx context.Context, orderID string, status types.OrderStatus) {
	if err := t.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		logger.ErrorWithErr(ctx, "Failed to persist terminal order status", err,
			"order_id", orderID,
			"status", status,
		)
		return
	}
	logger.Info(ctx, "Order reached terminal status", "order_id", orderID, "status", status)
	metrics.TrackerOutcomes.WithLabelValues(string(status)).Inc()
}
