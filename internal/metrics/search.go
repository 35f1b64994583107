package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and catalog Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqsearch",
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"outcome"}, // "match" / "no_match"
	)

	SearchResultsPerQuery = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "faqsearch",
			Name:      "search_results_per_query",
			Help:      "Number of results returned per query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "faqsearch",
			Name:      "search_duration_seconds",
			Help:      "Time spent scoring and ranking a query",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	CatalogDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqsearch",
			Name:      "catalog_documents",
			Help:      "Number of FAQ documents in the active snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqsearch",
			Name:      "catalog_reloads_total",
			Help:      "Catalog load attempts by status",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search and catalog metrics with the default registry.
// Repeated and concurrent calls register once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(
			SearchQueriesTotal,
			SearchResultsPerQuery,
			SearchDuration,
			CatalogDocuments,
			CatalogReloadsTotal,
		)
	})
}
