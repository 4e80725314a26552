// Package metrics defines and registers the Prometheus metrics of the
// marketplace core. Metrics register with the default registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "harvest_market"

// ── Ledger metrics ───────────────────────────────────────────────────────────

// BidsTotal counts bid attempts by outcome.
// Label:
//   - outcome: "accepted", "too_low", "closed", "invalid", "not_found", "partial_write", "error"
var BidsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_total",
		Help:      "Total number of bid attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LedgerWriteDuration measures the two-write bid sequence.
var LedgerWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_write_duration_seconds",
		Help:      "Duration of the bid insert plus auction update sequence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// AuctionsOpenedTotal counts auctions created from listings.
var AuctionsOpenedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auctions_opened_total",
		Help:      "Total number of auctions opened.",
	},
)

// ── Identity metrics ─────────────────────────────────────────────────────────

// ResolutionsTotal counts role resolutions.
// Labels:
//   - strategy: the step that produced the answer ("cache", "lookup_producer", "lookup_purchaser", "scan", "none")
//   - role: "producer", "purchaser", "undetermined" or "error"
var ResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_resolutions_total",
		Help:      "Total number of role resolutions, by deciding strategy and role.",
	},
	[]string{"strategy", "role"},
)

// ResolutionDuration measures a full resolution.
var ResolutionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "role_resolution_duration_seconds",
		Help:      "Duration of role resolution, by deciding strategy.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"strategy"},
)

// ObserveResolution records one finished resolution.
func ObserveResolution(strategy, role string, d time.Duration) {
	ResolutionsTotal.WithLabelValues(strategy, role).Inc()
	ResolutionDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// ObserveBid records one bid attempt.
func ObserveBid(outcome string) {
	BidsTotal.WithLabelValues(outcome).Inc()
}
