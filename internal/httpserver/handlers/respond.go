package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/logger"
)

type successEnvelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type errorEnvelope struct {
	Error     string            `json:"error"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:     msg,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}

// respondDomainError maps the domain error taxonomy to HTTP statuses.
// Unrecognized errors become a generic 500 so storage details never leak.
func respondDomainError(w http.ResponseWriter, loggerClient logger.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorEnvelope{
			Error:     vErr.Error(),
			Status:    http.StatusBadRequest,
			Timestamp: time.Now().UTC(),
			Fields:    vErr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	default:
		loggerClient.Error("request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a bounded JSON body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON payload")
	}
	return nil
}
