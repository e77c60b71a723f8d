package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "searches_total", Help: "Search workflow outcomes"},
		[]string{"outcome"},
	)
	SearchesSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "searches_superseded_total", Help: "In-flight searches discarded by a newer query"},
	)
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "bookings_total", Help: "Booking creation outcomes"},
		[]string{"outcome"},
	)
	BookingActions = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "booking_actions_total", Help: "Booking status transition requests"},
		[]string{"action"},
	)
	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "sessions_expired_total", Help: "Sessions cleared after an auth failure"},
	)

	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "parkflow", Name: "backend_requests_total", Help: "Requests issued to the parking backend"},
		[]string{"method", "path", "status"},
	)
	BackendLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "parkflow",
			Name:      "backend_request_duration_seconds",
			Help:      "Parking backend request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
