// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus instruments for fetches and exports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeOK labels a fetch that produced a response.
const OutcomeOK = "ok"

var (
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_miner_fetch_total",
			Help: "Total number of fetches by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_miner_fetch_duration_seconds",
			Help:    "Duration of fetches in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"mode"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_miner_exports_total",
			Help: "Total number of export files produced by format",
		},
		[]string{"format"},
	)
)

// RecordFetch counts one fetch and observes its duration.
func RecordFetch(mode, outcome string, d time.Duration) {
	FetchTotal.WithLabelValues(mode, outcome).Inc()
	FetchDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordExport counts one export file handed to a caller.
func RecordExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
