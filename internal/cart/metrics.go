package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	persistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Cart snapshots that could not be written to storage",
		},
	)

	persistCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_persist_coalesced_total",
			Help: "Pending cart snapshots replaced by a newer one before being written",
		},
	)

	rehydrateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_rehydrate_failures_total",
			Help: "Cart rehydrations that fell back to an empty cart",
		},
		[]string{"reason"},
	)

	liveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_live_sessions",
			Help: "Cart stores currently held in memory",
		},
	)
)
