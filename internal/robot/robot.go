// Package robot runs the per-instrument trading control loop. One Robot
// owns one instrument; robots share nothing mutable, only the broker
// boundary and the sinks.
package robot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"range-trading-bot/internal/channel"
	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/metrics"
	"range-trading-bot/internal/quotation"
	"range-trading-bot/internal/trace"
	"range-trading-bot/internal/types"
)

// orderTracker is the detached unit of work following a submitted order.
type orderTracker interface {
	Track(ctx context.Context, accountID, orderID string)
}

type Params struct {
	Figi          string
	AccountID     string
	DaysBack      int
	IntervalSize  float64
	QuantityLimit int64

	// CheckInterval is the pause between cycles; MarketPollInterval is the
	// distinct backoff while waiting for the market to open.
	CheckInterval      time.Duration
	MarketPollInterval time.Duration
}

type Robot struct {
	p        Params
	brk      interfaces.Broker
	notifier interfaces.Notifier
	trk      orderTracker
}

func New(p Params, brk interfaces.Broker, notifier interfaces.Notifier, trk orderTracker) *Robot {
	if p.CheckInterval == 0 {
		p.CheckInterval = 60 * time.Second
	}
	if p.MarketPollInterval == 0 {
		p.MarketPollInterval = 60 * time.Second
	}
	return &Robot{p: p, brk: brk, notifier: notifier, trk: trk}
}

// Run drives the control loop until ctx is cancelled. Broker request
// failures abort only the current cycle; any other error is a defect and is
// returned so the supervisor can restart this instrument's loop.
func (r *Robot) Run(ctx context.Context) error {
	logger.Info(ctx, "Robot started", "figi", r.p.Figi)
	for {
		if err := r.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !types.IsRequestError(err) {
				return fmt.Errorf("robot %s: %w", r.p.Figi, err)
			}
			logger.ErrorWithErr(ctx, "Cycle aborted by broker error", err, "figi", r.p.Figi)
			metrics.Cycles.WithLabelValues(r.p.Figi, "error").Inc()
		}
		if !sleep(ctx, r.p.CheckInterval) {
			logger.Info(ctx, "Robot stopped", "figi", r.p.Figi)
			return nil
		}
	}
}

// cycle executes the per-cycle protocol: market gate, channel refresh,
// in-flight guard, price and position read, stop-loss, range decision.
func (r *Robot) cycle(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "robot.Cycle")
	defer span.End()

	if err := r.waitMarketOpen(ctx); err != nil {
		return err
	}

	ch, err := r.calculateChannel(ctx)
	if errors.Is(err, channel.ErrNoData) {
		logger.Debug(ctx, "No channel available, skipping decision", "figi", r.p.Figi)
		metrics.Cycles.WithLabelValues(r.p.Figi, "no_channel").Inc()
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debug(ctx, "Channel borders", "figi", r.p.Figi, "lower", ch.Lower, "upper", ch.Upper)

	busy, err := r.orderInFlight(ctx)
	if err != nil {
		return err
	}
	if busy {
		logger.Info(ctx, "Order in progress, deferring decisions", "figi", r.p.Figi)
		metrics.Cycles.WithLabelValues(r.p.Figi, "busy").Inc()
		return nil
	}

	lastQuote, err := r.brk.GetLastPrice(ctx, r.p.Figi)
	if err != nil {
		return err
	}
	lastPrice := quotation.ToFloat(lastQuote)
	logger.Debug(ctx, "Last price", "figi", r.p.Figi, "price", lastPrice)

	lots, avgPrice, err := r.position(ctx)
	if err != nil {
		return err
	}

	// Stop-loss is evaluated before and independently of the range checks.
	if lots > 0 {
		triggered, err := r.checkStopLoss(ctx, ch, lastPrice, lots, avgPrice)
		if err != nil {
			return err
		}
		if triggered {
			metrics.Cycles.WithLabelValues(r.p.Figi, "traded").Inc()
			return nil
		}
	}

	return r.rangeDecision(ctx, ch, lastPrice, lots)
}

// waitMarketOpen blocks until market orders and API trading are both
// available for the instrument, rechecking on the market poll backoff.
func (r *Robot) waitMarketOpen(ctx context.Context) error {
	for {
		st, err := r.brk.GetTradingStatus(ctx, r.p.Figi)
		if err != nil {
			return err
		}
		if st.MarketOrderAvailable && st.APITradeAvailable {
			return nil
		}
		logger.Debug(ctx, "Waiting for the market to open", "figi", r.p.Figi)
		if !sleep(ctx, r.p.MarketPollInterval) {
			return ctx.Err()
		}
	}
}

// calculateChannel refreshes the historical window and recomputes the
// percentile band. Stateless: the window is refetched every cycle.
func (r *Robot) calculateChannel(ctx context.Context) (channel.Channel, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -r.p.DaysBack)
	candles, err := r.brk.GetCandles(ctx, r.p.Figi, from, to)
	if err != nil {
		return channel.Channel{}, err
	}
	logger.Debug(ctx, "Historical candles fetched", "figi", r.p.Figi, "count", len(candles))

	closes := make([]float64, 0, len(candles))
	for _, c := range candles {
		closes = append(closes, quotation.ToFloat(c.Close))
	}
	return channel.Calculate(closes, r.p.IntervalSize)
}

func (r *Robot) orderInFlight(ctx context.Context) (bool, error) {
	orders, err := r.brk.GetOpenOrders(ctx, r.p.AccountID)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.Figi == r.p.Figi {
			return true, nil
		}
	}
	return false, nil
}

// position returns the held lot count and average entry price for the
// instrument, zero values when no position exists. Always read fresh:
// external fills change it out-of-band.
func (r *Robot) position(ctx context.Context) (lots int64, avgPrice float64, err error) {
	positions, err := r.brk.GetPortfolio(ctx, r.p.AccountID)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range positions {
		if p.Figi == r.p.Figi {
			return quotation.Lots(p.QuantityLots), quotation.MoneyToFloat(p.AveragePrice), nil
		}
	}
	return 0, 0, nil
}

// sleep waits for d or until ctx is cancelled; reports false on
// cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
