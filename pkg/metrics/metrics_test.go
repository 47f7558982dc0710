package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/metrics"
)

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Requests.WithLabelValues("GET", "GET /products", "200").Inc()
	reg.TrackingUpdates.Inc()
	reg.StoreRecords.Set(37)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `scm_http_requests_total{method="GET",route="GET /products",status="200"} 1`)
	assert.Contains(t, string(body), "scm_tracking_updates_total 1")
	assert.Contains(t, string(body), "scm_store_records 37")
}
