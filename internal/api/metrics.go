package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "expensedesk",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of calls to the expenses API.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	},
	[]string{"method", "outcome"},
)

// observeRequest records one call under its outcome: the status class
// ("2xx", "4xx", ...) or "transport_error" when status is 0.
func observeRequest(method string, status int, elapsed time.Duration) {
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status/100) + "xx"
	}
	requestDuration.
		WithLabelValues(method, label).
		Observe(elapsed.Seconds())
}
