package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exposed by the service. Each instance owns its
// own registry so several instances can coexist (tests build one per case).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StockMovementsTotal    *prometheus.CounterVec
	StockMovementsRejected *prometheus.CounterVec

	ProductsTotal  prometheus.Gauge
	ProductsActive prometheus.Gauge
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		StockMovementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "movements_total",
			Help:      "Stock movements applied, by movement type",
		}, []string{"type"}),
		StockMovementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "movements_rejected_total",
			Help:      "Stock movements rejected, by movement type and reason",
		}, []string{"type", "reason"}),

		ProductsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "products",
			Help:      "Products currently in the catalog",
		}),
		ProductsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "products_active",
			Help:      "Active products currently in the catalog",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StockMovementsTotal,
		m.StockMovementsRejected,
		m.ProductsTotal,
		m.ProductsActive,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordMovement(movementType string) {
	m.StockMovementsTotal.WithLabelValues(movementType).Inc()
}

func (m *Metrics) RecordRejectedMovement(movementType, reason string) {
	m.StockMovementsRejected.WithLabelValues(movementType, reason).Inc()
}

func (m *Metrics) SetProductCounts(total, active int) {
	m.ProductsTotal.Set(float64(total))
	m.ProductsActive.Set(float64(active))
}
