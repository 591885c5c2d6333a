package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, route, status string
}

type fakeRecorder struct {
	mu           sync.Mutex
	observations []observation
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observations = append(f.observations, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/doctor/{doctorId}/slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/book", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}).Methods(http.MethodPost)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/doctor/42/slots", nil),
		httptest.NewRequest(http.MethodPost, "/book", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, recorder.observations, 2)
	assert.Equal(t, observation{method: http.MethodGet, route: "/doctor/{doctorId}/slots", status: "418"}, recorder.observations[0])
	assert.Equal(t, observation{method: http.MethodPost, route: "/book", status: "200"}, recorder.observations[1])
}
