// Package metrics contains middlewares and counters for metrics gathering.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP Requests total counter
var totalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP Requests.",
	},
	[]string{"path"},
)

// HTTP Response status
var duration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_duration",
		Help: "HTTP Requests Duration",
	},
	[]string{"path"},
)

// Booked appointments counter
var appointmentsBooked = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "appointments_booked_total",
		Help: "Appointments booked.",
	},
)

// Cancelled appointments counter
var appointmentsCancelled = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "appointments_cancelled_total",
		Help: "Appointments cancelled.",
	},
	[]string{"by"},
)

func init() {
	err := prometheus.Register(totalRequests)
	if err != nil {
		panic(err)
	}
	err = prometheus.Register(duration)
	if err != nil {
		panic(err)
	}
	err = prometheus.Register(appointmentsBooked)
	if err != nil {
		panic(err)
	}
	err = prometheus.Register(appointmentsCancelled)
	if err != nil {
		panic(err)
	}
}

// CountBookedAppointment registers a booked appointment.
func CountBookedAppointment() {
	appointmentsBooked.Inc()
}

// CountCancelledAppointment registers an appointment cancelled by the given role.
func CountCancelledAppointment(by string) {
	appointmentsCancelled.WithLabelValues(by).Inc()
}

// PrometheusMiddleware instruments the given request and register metrics.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(duration.WithLabelValues(r.RequestURI))
		next.ServeHTTP(w, r)
		totalRequests.WithLabelValues(r.RequestURI).Inc()
		timer.ObserveDuration()
	})
}
