// Package metrics provides Prometheus collectors for the interchange service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog import metrics
	CatalogRecordsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_catalog_records_imported_total",
			Help: "Total number of catalog product records imported",
		},
		[]string{"category"},
	)

	CatalogRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_catalog_rows_dropped_total",
			Help: "Catalog rows dropped for a missing name or link identifier",
		},
	)

	CatalogImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_catalog_imports_total",
			Help: "Catalog import batches by outcome",
		},
		[]string{"status"},
	)

	// Assembly export metrics
	AssemblyExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_assembly_exports_total",
			Help: "Assembly document exports by outcome",
		},
		[]string{"status"},
	)

	AssemblyPartsDerived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_assembly_parts_derived_total",
			Help: "Cut parts derived across all generated assembly documents",
		},
	)

	// Pricing metrics
	PriceChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitchen_price_changes_total",
			Help: "Price changes processed by outcome",
		},
		[]string{"status"},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kitchen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Status label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
