// Package metrics registers the Prometheus instruments exposed at
// /metrics: page views per route and persistence failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PageViews counts rendered pages by route pattern and method.
	PageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_page_views_total",
		Help: "Number of page requests served, by method and route.",
	}, []string{"method", "route"})

	// PersistenceFailures counts mutations that were rolled back due to
	// a storage-layer error, by entity kind.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_persistence_failures_total",
		Help: "Number of create/update/delete operations that failed in storage.",
	}, []string{"entity"})

	// ValidationFailures counts form submissions rejected before any
	// database call, by entity kind.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fyyur_validation_failures_total",
		Help: "Number of form submissions rejected by validation.",
	}, []string{"entity"})
)
