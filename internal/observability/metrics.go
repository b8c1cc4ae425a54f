package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mbb_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	BookingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mbb_bookings_total",
			Help: "Total number of successful booking transactions",
		},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mbb_booking_conflicts_total",
			Help: "Booking attempts rejected for insufficient seats",
		},
	)

	BookingTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mbb_booking_tx_seconds",
			Help:    "Duration of the booking transaction",
			Buckets: prometheus.DefBuckets,
		},
	)
)
