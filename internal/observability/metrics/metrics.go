package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalapp_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentalapp_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leasesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalapp_leases_issued_total",
		Help: "Count of issued leases by retroactivity",
	}, []string{"retroactive"})

	receiptsBackfilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentalapp_receipts_backfilled_total",
		Help: "Count of receipts synthesized by retroactive backfill",
	})
)

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLeaseIssued records a lease issuance and any backfill it ran.
func ObserveLeaseIssued(retroactive bool, backfilled int) {
	label := "false"
	if retroactive {
		label = "true"
	}
	leasesIssued.WithLabelValues(label).Inc()
	if backfilled > 0 {
		receiptsBackfilled.Add(float64(backfilled))
	}
}
