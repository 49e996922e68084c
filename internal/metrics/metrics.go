// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskgraph"

// HTTPRequestsTotal counts handled requests by method, route template and
// status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// EntityWritesTotal counts every change recorded in the activity log.
// Labels:
//   - resource: project, task or comment
//   - action: created, updated, deleted or commented
var EntityWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_writes_total",
		Help:      "Total number of entity writes, by resource and action.",
	},
	[]string{"resource", "action"},
)

var GraphBuildDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graph_build_duration_seconds",
		Help:      "Time spent building knowledge graphs.",
		Buckets:   prometheus.DefBuckets,
	},
)

// GraphEdgesTotal counts emitted edges by type.
var GraphEdgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_edges_total",
		Help:      "Total number of knowledge graph edges emitted, by edge type.",
	},
	[]string{"type"},
)

var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of searches, by mode.",
	},
	[]string{"mode"},
)
