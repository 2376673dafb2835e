package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inventario/internal/commons"
	"inventario/internal/config"
	"inventario/internal/dto"
	apperrors "inventario/internal/errors"
	"inventario/internal/infrastructure/metrics"
)

type RouteProvider interface {
	Routes() chi.Router
}

func NewRouter(products, stock RouteProvider, m *metrics.Metrics, cfg config.MetricsConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(traceID)
	r.Use(accessLog(logger))
	if cfg.Enabled {
		r.Use(instrument(m))
	}
	r.Use(recoverer(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		commons.WriteError(w, r, apperrors.NewNotFoundError("route "+r.Method+" "+r.URL.Path+" not found"), logger)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		commons.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"}, logger)
	})
	if cfg.Enabled {
		r.Method(http.MethodGet, cfg.Path, m.Handler())
	}

	r.Mount("/products", products.Routes())
	r.Mount("/stock", stock.Routes())

	return r
}
