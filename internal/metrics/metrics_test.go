package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAPI(t *testing.T) {
	_, m := NewRegistry()
	m.ObserveAPI(http.MethodGet, "/orders", 200, 10*time.Millisecond)
	m.ObserveAPI(http.MethodGet, "/orders", 0, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APICalls.WithLabelValues("GET", "/orders", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APICalls.WithLabelValues("GET", "/orders", "error")))
}

func TestGuardDecisionsCounter(t *testing.T) {
	_, m := NewRegistry()
	m.GuardDecisions.WithLabelValues("/users", "redirect_not_found").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuardDecisions.WithLabelValues("/users", "redirect_not_found")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	_, m := NewRegistry()
	m.RateLimited.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logichain_auth_rate_limited_total 1")
}
