package routes

import (
	"github.com/go-chi/chi/v5"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/httpserver/handlers"
	"blog-api/internal/httpserver/mw"
)

func init() { Register(registerAnalytics) }

func registerAnalytics(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(d.Limiter))
	limited.Get("/api/analytics/summary", handlers.Summary(d))
	limited.Get("/api/analytics/popular", handlers.Popular(d))
}
