// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BackendRequests counts calls to the marketplace backend by endpoint and
	// outcome ("ok", "error").
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_market_backend_requests_total",
			Help: "Marketplace backend requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// RefreshTicks counts dashboard poller ticks by server id and outcome.
	RefreshTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_market_refresh_ticks_total",
			Help: "Dashboard refresh poller ticks by outcome.",
		},
		[]string{"outcome"},
	)

	// StaleResponsesDropped counts poller responses discarded because a newer
	// request had already been issued.
	StaleResponsesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mcp_market_stale_responses_dropped_total",
			Help: "Poller responses discarded as superseded.",
		},
	)

	// BalanceFetchDuration observes the duration of full multi-chain balance
	// aggregation runs.
	BalanceFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcp_market_balance_fetch_duration_seconds",
			Help:    "Duration of multi-chain balance aggregation runs.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ActivePollers tracks how many per-server dashboard pollers are running.
	ActivePollers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcp_market_active_pollers",
			Help: "Number of running dashboard pollers.",
		},
	)
)

// MustRegister registers all collectors with the default registry. Call once
// from main.
func MustRegister() {
	prometheus.MustRegister(
		BackendRequests,
		RefreshTicks,
		StaleResponsesDropped,
		BalanceFetchDuration,
		ActivePollers,
	)
}
