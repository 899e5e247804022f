package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wingbank/appconfig/internal/server/middleware"
)

// setupMetrics registers the metrics middleware and the scrape endpoint.
func setupMetrics(api huma.API, r chi.Router) {
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	api.UseMiddleware(middleware.MetricsMW)
}
