package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
	Posts int    `json:"posts"`
}

// Readyz reports readiness: the key-value backend answers a ping and the
// post catalog has been loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "ok"
		ready := true
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check: store ping failed", logger.Error(err))
			storeStatus = "unreachable"
			ready = false
		}
		if d.Catalog.LastReload().IsZero() {
			ready = false
		}

		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: ready,
			Store: storeStatus,
			Posts: d.Catalog.Count(),
		})
	}
}
