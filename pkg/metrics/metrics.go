package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SweepRuns counts completed sweep runs by kind and outcome.
	SweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_sweep_runs_total",
			Help: "Total number of sweep runs",
		},
		[]string{"sweep", "outcome"}, // sweep: search, watchlist; outcome: ok, fatal
	)

	// SweepDuration observes wall time per sweep run.
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalyst_sweep_duration_seconds",
			Help:    "Sweep run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"sweep"},
	)

	// UnitsProcessed counts units of work (searches, users) per sweep.
	UnitsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_sweep_units_processed_total",
			Help: "Units of work processed by sweeps",
		},
		[]string{"sweep"},
	)

	// UnitErrors counts units that failed and were skipped.
	UnitErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_sweep_unit_errors_total",
			Help: "Units of work that errored during a sweep",
		},
		[]string{"sweep"},
	)

	// MatchesFound counts saved-search catalyst matches.
	MatchesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalyst_search_matches_total",
			Help: "Total catalysts matched by saved searches",
		},
	)

	// AlertsGenerated counts watchlist alerts by type and severity.
	AlertsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_watchlist_alerts_total",
			Help: "Watchlist alerts generated",
		},
		[]string{"alert_type", "severity"},
	)

	// NotificationsSent counts notifications by channel and result.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_notifications_total",
			Help: "Channel send attempts",
		},
		[]string{"channel", "result"}, // result: sent, failed, skipped_tier
	)

	// GateRejections counts admissions denied by the rate/quiet gate.
	GateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalyst_gate_rejections_total",
			Help: "Notifications suppressed by the admission gate",
		},
		[]string{"reason"}, // rate_limited, quiet_hours
	)
)
