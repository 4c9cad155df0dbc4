package routes

import (
	"github.com/go-chi/chi/v5"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/httpserver/handlers"
	"blog-api/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.RequireAdmin(d.Guard, d.Logger)).Post("/api/admin/reload", handlers.Reload(d))
}
