package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality: counts only, no per-token labels.
var (
	refreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_refresh_total",
		Help: "Context refresh ticks performed",
	})

	refreshChanged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_refresh_changed_total",
		Help: "Refresh ticks that observed live-state drift",
	})

	resolveTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_resolve_total",
		Help: "Token resolutions attempted",
	})

	resolveMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_resolve_miss_total",
		Help: "Token resolutions that found no value",
	})

	tokensRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_tokens_rejected_total",
		Help: "Token definitions rejected by validation",
	})

	tokensInvalidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statline_tokens_invalidated_total",
		Help: "Cached token outputs replaced after a refresh",
	})

	tokensRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statline_tokens_registered",
		Help: "Token definitions currently registered",
	})
)
