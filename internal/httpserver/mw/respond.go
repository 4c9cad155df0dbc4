package mw

import (
	"encoding/json"
	"net/http"
	"time"
)

type errorEnvelope struct {
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func writeErrorEnvelope(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:     msg,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}
