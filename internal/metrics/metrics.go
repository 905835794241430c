// Package metrics exposes the Prometheus collectors used across the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kilagbe_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kilagbe_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	adsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_ads_created_total",
		Help: "Advertisements created.",
	})

	adQuotaRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_ad_quota_rejections_total",
		Help: "Ad creations rejected by the free ad limit.",
	})

	ordersBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_shifting_orders_booked_total",
		Help: "Shifting orders booked.",
	})

	ordersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_shifting_orders_completed_total",
		Help: "Complete actions applied to shifting orders.",
	})

	usersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_users_created_total",
		Help: "User records created on first sign-in.",
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kilagbe_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
)

func ObserveHTTP(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func RecordAdCreated() { adsCreated.Inc() }
func RecordQuotaRejected() { adQuotaRejections.Inc() }
func RecordOrderBooked() { ordersBooked.Inc() }
func RecordOrderCompleted() { ordersCompleted.Inc() }
func RecordUserCreated() { usersCreated.Inc() }
func RecordRateLimited() { rateLimited.Inc() }
