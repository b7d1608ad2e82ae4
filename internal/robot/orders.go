package robot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"range-trading-bot/internal/channel"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/metrics"
	"range-trading-bot/internal/tradelog"
	"range-trading-bot/internal/types"
)

const (
	triggerRange    = "range"
	triggerStopLoss = "stop_loss"
)

// rangeDecision trades against the channel borders: sell the whole position
// at or above the upper border, buy up to the lot limit at or below the
// lower border, do nothing in between.
func (r *Robot) rangeDecision(ctx context.Context, ch channel.Channel, lastPrice float64, lots int64) error {
	switch {
	case lastPrice >= ch.Upper:
		logger.Debug(ctx, "Last price at or above upper border",
			"figi", r.p.Figi, "price", lastPrice, "upper", ch.Upper)
		return r.rangeSell(ctx, lastPrice, lots)
	case lastPrice <= ch.Lower:
		logger.Debug(ctx, "Last price at or below lower border",
			"figi", r.p.Figi, "price", lastPrice, "lower", ch.Lower)
		return r.rangeBuy(ctx, lastPrice, lots)
	default:
		metrics.Cycles.WithLabelValues(r.p.Figi, "idle").Inc()
		return nil
	}
}

func (r *Robot) rangeSell(ctx context.Context, lastPrice float64, lots int64) error {
	if lots <= 0 {
		logger.Debug(ctx, "No open long position, waiting", "figi", r.p.Figi)
		metrics.Cycles.WithLabelValues(r.p.Figi, "idle").Inc()
		return nil
	}
	notify := fmt.Sprintf("Sell %d lots of %s. Last price = %v", lots, r.p.Figi, lastPrice)
	if err := r.submit(ctx, types.DirectionSell, lots, lastPrice, triggerRange, notify); err != nil {
		return err
	}
	metrics.Cycles.WithLabelValues(r.p.Figi, "traded").Inc()
	return nil
}

func (r *Robot) rangeBuy(ctx context.Context, lastPrice float64, lots int64) error {
	if lots >= r.p.QuantityLimit {
		logger.Debug(ctx, "Position limit reached, waiting",
			"figi", r.p.Figi, "lots", lots, "limit", r.p.QuantityLimit)
		metrics.Cycles.WithLabelValues(r.p.Figi, "idle").Inc()
		return nil
	}
	buyLots := r.p.QuantityLimit - lots
	notify := fmt.Sprintf("Buy %d lots of %s. Last price = %v", buyLots, r.p.Figi, lastPrice)
	if err := r.submit(ctx, types.DirectionBuy, buyLots, lastPrice, triggerRange, notify); err != nil {
		return err
	}
	metrics.Cycles.WithLabelValues(r.p.Figi, "traded").Inc()
	return nil
}

// submit runs the shared submission sub-protocol: a fresh client order id
// per attempt, a notification on success, then a detached tracker. A broker
// rejection is logged and the cycle moves on; the next cycle re-evaluates
// from scratch.
func (r *Robot) submit(ctx context.Context, direction types.Direction, qty int64, lastPrice float64, trigger, notify string) error {
	if qty <= 0 {
		return fmt.Errorf("invalid order quantity %d", qty)
	}

	intent := types.OrderIntent{
		Figi:      r.p.Figi,
		AccountID: r.p.AccountID,
		Direction: direction,
		Quantity:  qty,
		OrderID:   uuid.NewString(),
	}
	result, err := r.brk.PostOrder(ctx, intent)
	if err != nil {
		metrics.OrderFailures.WithLabelValues(r.p.Figi).Inc()
		if types.IsRequestError(err) {
			logger.ErrorWithErr(ctx, "Order submission failed", err,
				"figi", r.p.Figi,
				"direction", direction,
				"quantity", qty,
			)
			return nil
		}
		return err
	}

	logger.Trade(ctx, r.p.Figi, string(direction), qty, lastPrice, result.OrderID, "trigger", trigger)
	metrics.Orders.WithLabelValues(r.p.Figi, string(direction), trigger).Inc()
	if err := tradelog.Append(tradelog.Entry{
		Figi:      r.p.Figi,
		Direction: string(direction),
		OrderID:   result.OrderID,
		Trigger:   trigger,
		Qty:       qty,
		Price:     lastPrice,
	}); err != nil {
		logger.Warn(ctx, "Trade journal write failed", "error", err)
	}
	if notify != "" {
		r.notifier.Post(ctx, notify)
	}

	// Detached: the loop never waits for the tracker, and the loop's own
	// cancellation must not cut a poll mid-flight.
	go r.trk.Track(context.WithoutCancel(ctx), r.p.AccountID, result.OrderID)
	return nil
}
