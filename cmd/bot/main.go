package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/robot"
	"range-trading-bot/internal/tracker"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())
	defer shutdownTracing()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	compressOldLogs(ctx)

	st, err := initializeStore(ctx, cfg)
	must(err)
	defer st.Close()

	brk := initializeBroker(ctx, cfg)
	notifier := initializeNotifier(ctx, cfg)
	trk := tracker.NewWithInterval(brk, st, time.Duration(cfg.TrackPollSeconds)*time.Second)

	startMetricsServer(ctx, cfg)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	for _, figi := range cfg.Instruments {
		params := robot.Params{
			Figi:               figi,
			AccountID:          cfg.AccountID,
			DaysBack:           cfg.DaysBack,
			IntervalSize:       cfg.IntervalSize,
			QuantityLimit:      cfg.QuantityLimit,
			CheckInterval:      time.Duration(cfg.CheckIntervalSeconds) * time.Second,
			MarketPollInterval: time.Duration(cfg.MarketPollSeconds) * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			supervise(ctx, params, brk, notifier, trk)
		}()
	}
	logger.Info(ctx, "Bot started", "mode", cfg.Mode, "instruments", len(cfg.Instruments))

	<-sigc
	logger.Info(ctx, "Shutting down...")
	cancel()
	wg.Wait()
	logger.Info(context.Background(), "All robots stopped")
}

const restartBackoff = 10 * time.Second

// supervise keeps one instrument's loop alive. A returned error is a
// defect, not a broker hiccup; the loop is rebuilt fresh after a backoff so
// one bad instrument cannot take the process down.
func supervise(ctx context.Context, params robot.Params, brk interfaces.Broker, notifier interfaces.Notifier, trk *tracker.Tracker) {
	for {
		err := robot.New(params, brk, notifier, trk).Run(ctx)
		if err == nil {
			return
		}
		logger.ErrorWithErr(ctx, "Robot crashed, restarting", err, "figi", params.Figi)
		notifier.Post(ctx, fmt.Sprintf("Robot %s crashed, restarting: %v", params.Figi, err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(restartBackoff):
		}
	}
}
