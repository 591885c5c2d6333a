package identityservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedicalBookingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker BreakerConfig) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, time.Second, breaker, logger.Nop())
}

func TestClient_GetDoctor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/doctors/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"name":"Dr. House","email":"house@clinic.test","specialization":"diagnostics"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, BreakerConfig{})

	doctor, err := client.GetDoctor(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), doctor.ID)
	assert.Equal(t, "Dr. House", doctor.Name)
	assert.Equal(t, "diagnostics", doctor.Specialization)

	_, err = client.GetDoctor(context.Background(), 8)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestClient_GetPatientNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, BreakerConfig{})

	_, err := client.GetPatient(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, BreakerConfig{FailureThreshold: 2, Timeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := client.GetPatient(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	}

	_, err := client.GetPatient(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, BreakerConfig{FailureThreshold: 1, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := client.GetDoctor(context.Background(), 1)
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	}
}
