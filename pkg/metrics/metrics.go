// Package metrics defines the Prometheus collectors for index refreshes and
// queries and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the index.
type Metrics struct {
	RefreshesTotal    *prometheus.CounterVec
	RefreshDuration   prometheus.Histogram
	Documents         prometheus.Gauge
	UniqueTerms       prometheus.Gauge
	TotalTerms        prometheus.Gauge
	QueriesTotal      *prometheus.CounterVec
	QueryResultsCount prometheus.Histogram
}

// New creates the collectors and registers them on reg. Passing
// prometheus.DefaultRegisterer exposes them through Handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_refreshes_total",
				Help: "Total index refreshes by status (ok, io, conflict, ...).",
			},
			[]string{"status"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termindex_refresh_duration_seconds",
				Help:    "Wall time of a full corpus rebuild in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		Documents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_documents",
				Help: "Documents in the committed index generation.",
			},
		),
		UniqueTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_unique_terms",
				Help: "Distinct terms in the committed inverted index.",
			},
		),
		TotalTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_total_terms",
				Help: "Term occurrences across all documents in the committed generation.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_queries_total",
				Help: "Boolean queries by operator.",
			},
			[]string{"operator"},
		),
		QueryResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termindex_query_results",
				Help:    "Number of documents returned per boolean query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
	}

	reg.MustRegister(
		m.RefreshesTotal,
		m.RefreshDuration,
		m.Documents,
		m.UniqueTerms,
		m.TotalTerms,
		m.QueriesTotal,
		m.QueryResultsCount,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
