package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordBooking(t *testing.T) {
	m := New("test")

	m.RecordBooking("book", "success")
	m.RecordBooking("book", "success")
	m.RecordBooking("book", "slot_unavailable")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("book", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("book", "slot_unavailable")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordBooking("book", "success")
		m.RecordNotification("appointment.booked", "failed")
		m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)
		m.ObserveHTTPRequest("GET", "/x", "200", time.Millisecond)
	})
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("b")
	})
}
