package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// TimedErrorResponse is the error body of the social feed endpoint.
type TimedErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func respondTimedError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, TimedErrorResponse{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
