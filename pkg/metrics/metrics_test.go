package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict()
	m.IncStatusTransition("scheduled", "cancelled")
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 10*time.Millisecond)
	m.ObserveDBQuery("exec", errors.New("boom"), time.Millisecond)
	m.SetPoolStats(5, 2, 3, 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("scheduled", "cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "201")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbOpenConnections))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.dbWaitCount))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "booking_status_transitions_total")
	assert.Contains(t, names, "db_query_duration_seconds")
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict()
		m.IncStatusTransition("scheduled", "completed")
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("query", nil, time.Millisecond)
		m.SetPoolStats(1, 1, 0, 0)
	})
}
