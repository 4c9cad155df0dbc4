package routes

import (
	"github.com/go-chi/chi/v5"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/httpserver/handlers"
)

func init() { Register(registerViews) }

func registerViews(r chi.Router, d deps.Deps) {
	r.Get("/api/views", handlers.GetViews(d))
	r.Post("/api/views", handlers.IncrementViews(d))
	r.Get("/api/views/total", handlers.TotalViews(d))
}
