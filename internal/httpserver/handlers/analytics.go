package handlers

import (
	"net/http"
	"strconv"

	"blog-api/internal/httpserver/deps"
)

// Summary returns the aggregate analytics snapshot.
func Summary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, d.Analytics.GetSummary(r.Context()))
	}
}

// defaultPopularLimit applies when the limit query param is missing or
// malformed.
const defaultPopularLimit = 5

// Popular returns the top posts by view count. A malformed or missing
// limit falls back to the default rather than erroring.
func Popular(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultPopularLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}

		respond(w, http.StatusOK, d.Analytics.PopularPosts(r.Context(), limit))
	}
}
