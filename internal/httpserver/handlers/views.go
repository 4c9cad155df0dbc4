package handlers

import (
	"net/http"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/logger"
	"blog-api/internal/views"
)

type viewsResponse struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

type totalViewsResponse struct {
	TotalViews int64 `json:"totalViews"`
}

// GetViews returns the counter for one slug. Never-incremented slugs
// report zero.
func GetViews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.URL.Query().Get("slug")
		if err := views.ValidateSlug(slug); err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		count, err := d.Views.GetViews(r.Context(), slug)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		respond(w, http.StatusOK, viewsResponse{Slug: slug, Views: count})
	}
}

type incrementRequest struct {
	Slug string `json:"slug"`
}

// IncrementViews bumps the counter for one slug and returns the new count.
func IncrementViews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req incrementRequest
		if err := decodeJSON(r, &req); err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}
		if err := views.ValidateSlug(req.Slug); err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		count, err := d.Views.IncrementViews(r.Context(), req.Slug)
		if err != nil {
			respondDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Debug("view recorded",
			logger.String("slug", req.Slug),
			logger.Int64("views", count))

		respond(w, http.StatusOK, viewsResponse{Slug: req.Slug, Views: count})
	}
}

// TotalViews sums every counter. Degrades to zero on storage failure.
func TotalViews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, totalViewsResponse{
			TotalViews: d.Analytics.TotalViews(r.Context()),
		})
	}
}
