package handlers

import (
	"net/http"

	"blog-api/internal/httpserver/deps"
	"blog-api/internal/logger"
	"blog-api/internal/utils"
)

type reloadResponse struct {
	Triggered bool `json:"triggered"`
}

// Reload triggers a manual post catalog reload. A reload already in flight
// reports triggered=false instead of queuing another.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := utils.ClientIP(r, d.TrustProxy)
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", clientIP))
			respond(w, http.StatusAccepted, reloadResponse{Triggered: true})
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", clientIP))
			respond(w, http.StatusAccepted, reloadResponse{Triggered: false})
		}
	}
}
