//nolint:gochecknoglobals
package request

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clientRequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eatnow",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "The latency of the outgoing HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})

	clientRequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eatnow",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Number of the outgoing HTTP requests.",
	}, []string{"endpoint", "method", "status"})
)

func observe(endpoint, method, status string, start time.Time) {
	if endpoint == "" {
		endpoint = "other"
	}

	clientRequestsDuration.With(prometheus.Labels{"endpoint": endpoint, "method": method}).Observe(time.Since(start).Seconds())
	clientRequestsCount.With(prometheus.Labels{"endpoint": endpoint, "method": method, "status": status}).Inc()
}
