package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("inventario")
		New("inventario")
	})
}

func TestMetrics_RecordMovement(t *testing.T) {
	m := New("inventario")

	m.RecordMovement("entrada")
	m.RecordMovement("entrada")
	m.RecordMovement("salida")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StockMovementsTotal.WithLabelValues("entrada")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockMovementsTotal.WithLabelValues("salida")))
}

func TestMetrics_RecordRejectedMovement(t *testing.T) {
	m := New("inventario")

	m.RecordRejectedMovement("salida", "insufficient_stock")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockMovementsRejected.WithLabelValues("salida", "insufficient_stock")))
}

func TestMetrics_SetProductCounts(t *testing.T) {
	m := New("inventario")

	m.SetProductCounts(5, 3)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.ProductsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ProductsActive))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("inventario")
	m.ObserveHTTPRequest(http.MethodGet, "/products", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inventario_http_requests_total{method="GET",route="/products",status="200"} 1`)
}
