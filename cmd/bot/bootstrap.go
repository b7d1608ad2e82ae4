package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"range-trading-bot/internal/broker/brokerobs"
	"range-trading-bot/internal/broker/tinkoff"
	"range-trading-bot/internal/config"
	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/metrics"
	"range-trading-bot/internal/notify/noop"
	"range-trading-bot/internal/notify/telegram"
	"range-trading-bot/internal/store/sqlite"
	"range-trading-bot/internal/trace"
	"range-trading-bot/internal/tradelog"

	"github.com/joho/godotenv"
)

// initializeSystem initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// compressOldLogs compresses old trade journal files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeBroker initializes and returns the broker instance with observability
func initializeBroker(ctx context.Context, cfg *config.Config) interfaces.Broker {
	brk := tinkoff.New(tinkoff.Params{
		Token:   os.Getenv("TINKOFF_TOKEN"),
		Sandbox: cfg.Sandbox(),
	})

	if cfg.Sandbox() {
		logger.Warn(ctx, "Running in SANDBOX mode - orders go to the sandbox services")
	} else {
		logger.Info(ctx, "Running in LIVE mode")
	}

	// Wrap with observability middleware
	return brokerobs.Wrap(brk)
}

// initializeNotifier returns the telegram notifier when configured, the
// no-op notifier otherwise.
func initializeNotifier(ctx context.Context, cfg *config.Config) interfaces.Notifier {
	if !cfg.Telegram.Enabled {
		return noop.New()
	}
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		logger.Warn(ctx, "Telegram enabled but TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID missing - notifications disabled")
		return noop.New()
	}
	return telegram.New(token, chatID)
}

// initializeStore opens the order history database
func initializeStore(ctx context.Context, cfg *config.Config) (*sqlite.Store, error) {
	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open order store", err, "path", cfg.DBPath)
		return nil, err
	}
	logger.Info(ctx, "Order store ready", "path", cfg.DBPath)
	return st, nil
}

// startMetricsServer exposes prometheus metrics when an address is
// configured. Serve failures are logged, not fatal.
func startMetricsServer(ctx context.Context, cfg *config.Config) {
	if cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	go func() {
		logger.Info(ctx, "Metrics server listening", "addr", cfg.MetricsAddr)
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.ErrorWithErr(ctx, "Metrics server stopped", err)
		}
	}()
}

// shutdownTracing flushes the tracer on exit
func shutdownTracing() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown tracer: %v\n", err)
	}
}
