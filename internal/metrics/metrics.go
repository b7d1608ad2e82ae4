// Package metrics exposes Prometheus counters the bot updates during
// operation, served at /metrics when a listen address is configured.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cycles counts completed control-loop cycles per instrument, split by
	// outcome: traded, idle, busy, no_channel, error.
	Cycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_cycles_total",
			Help: "Control loop cycles by outcome",
		},
		[]string{"figi", "outcome"},
	)

	// Orders counts submitted orders split by direction and trigger
	// (range or stop_loss).
	Orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_total",
			Help: "Orders submitted",
		},
		[]string{"figi", "direction", "trigger"},
	)

	// OrderFailures counts rejected or failed order submissions.
	OrderFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_order_failures_total",
			Help: "Order submissions that failed",
		},
		[]string{"figi"},
	)

	// TrackerPolls counts order-state polls issued by lifecycle trackers.
	TrackerPolls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_tracker_polls_total",
			Help: "Order state polls by lifecycle trackers",
		},
	)

	// TrackerOutcomes counts finished trackers by the terminal status
	// observed, plus "abandoned" for trackers that gave up.
	TrackerOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_tracker_outcomes_total",
			Help: "Lifecycle tracker results",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		Cycles,
		Orders,
		OrderFailures,
		TrackerPolls,
		TrackerOutcomes,
	)
}

// Handler returns the Prometheus text exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
