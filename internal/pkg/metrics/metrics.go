// Package metrics provides Prometheus collectors for the site core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "site"

var (
	// ViewOpsTotal counts view store operations by backend, op and status.
	ViewOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_store_ops_total",
			Help:      "Total number of view store operations",
		},
		[]string{"backend", "op", "status"},
	)

	// ViewOpDuration measures view store latency.
	ViewOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_store_op_duration_seconds",
			Help:      "Duration of view store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)

	// ContentScansTotal counts directory scans of the content tree.
	ContentScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_scans_total",
			Help:      "Total number of content directory scans",
		},
		[]string{"kind"},
	)

	// ContentCacheTotal counts content cache lookups by result.
	ContentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_lookups_total",
			Help:      "Content cache lookups by result",
		},
		[]string{"result"},
	)

	// ContentParseErrorsTotal counts files that fell back to default front-matter.
	ContentParseErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_parse_errors_total",
			Help:      "Content files whose front-matter could not be parsed",
		},
	)
)

// RecordViewOp records a view store operation.
func RecordViewOp(backend, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ViewOpsTotal.WithLabelValues(backend, op, status).Inc()
	ViewOpDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}

// RecordScan records a content directory scan.
func RecordScan(kind string) {
	ContentScansTotal.WithLabelValues(kind).Inc()
}

// RecordCache records a content cache hit or miss.
func RecordCache(hit bool) {
	if hit {
		ContentCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	ContentCacheTotal.WithLabelValues("miss").Inc()
}
