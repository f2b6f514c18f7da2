package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesCount(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	n := 0
	for range ch {
		n++
	}
	return n
}

func Test_ObserveRequest_Outcome(t *testing.T) {
	_, err := requestDuration.GetMetricWith(prometheus.Labels{"method": http.MethodTrace, "outcome": "2xx"})
	require.NoError(t, err, "labels are method and outcome")
	requestDuration.DeleteLabelValues(http.MethodTrace, "2xx")

	before := seriesCount(requestDuration)
	observeRequest(http.MethodTrace, http.StatusNotFound, time.Millisecond)
	observeRequest(http.MethodTrace, 0, time.Millisecond)
	observeRequest(http.MethodTrace, http.StatusTeapot, time.Millisecond)

	assert.Equal(t, before+2, seriesCount(requestDuration), "one series per outcome")
	assert.True(t, requestDuration.DeleteLabelValues(http.MethodTrace, "4xx"))
	assert.True(t, requestDuration.DeleteLabelValues(http.MethodTrace, "transport_error"))
}
