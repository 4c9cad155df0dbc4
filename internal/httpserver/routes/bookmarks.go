package routes

import (
	"github.com/go-chi/chi/v5"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/httpserver/handlers"
	"blog-api/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	admin := mw.RequireAdmin(d.Guard, d.Logger)

	r.Route("/api/bookmarks", func(r chi.Router) {
		// List and single-record reads do their own visibility filtering;
		// everything else is admin-only.
		r.Get("/", handlers.ListBookmarks(d))
		r.With(admin).Post("/", handlers.CreateBookmark(d))

		// Fixed paths before the {id} wildcard.
		r.With(admin).Get("/tags", handlers.BookmarkTags(d))
		r.With(admin).Get("/export", handlers.ExportBookmarks(d))

		r.Get("/{id}", handlers.GetBookmark(d))
		r.With(admin).Patch("/{id}", handlers.UpdateBookmark(d))
		r.With(admin).Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
