package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/pkg/metrics"
)

func TestObserveAsset_CuentaPorResultado(t *testing.T) {
	m := metrics.New("catalogo_test")

	m.ObserveAsset("delete", nil)
	m.ObserveAsset("delete", errors.New("timeout"))
	m.ObserveAsset("delete", errors.New("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssetOperations.WithLabelValues("delete", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AssetOperations.WithLabelValues("delete", "error")))
}

func TestNilMetrics_NoFalla(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveAsset("upload", nil)
		m.ObserveRequest("GET", "/x", 200, time.Millisecond)
	})
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := metrics.New("catalogo_test")
	m.ObserveRequest("GET", "/api/v1/vendors", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `catalogo_test_http_requests_total{method="GET",route="/api/v1/vendors",status="200"} 1`)
}
