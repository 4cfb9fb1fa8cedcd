// Package handlers writes JSON responses for the public catalog API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frenchcert/frenchcert/pkg/middleware"
)

// Failure is the error envelope. It mirrors the backend's
// {"success":false,"message":...} shape so browser code reads one format.
type Failure struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondJSON writes data as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err with the request ID and writes a Failure.
// Client errors carry err's message. Server errors are logged at error
// level and answered with the status text only, so backend details
// stay in the logs.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	id := middleware.RequestIDFrom(r.Context())

	level := slog.LevelWarn
	message := err.Error()
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
		message = http.StatusText(status)
	}
	logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", id,
		"error", err,
	)

	RespondJSON(w, status, Failure{Message: message, RequestID: id})
}
