// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes {"error": err} with the given status code.
// 5xx responses are logged at error level, everything else at debug.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logResponseError(logger, status, err)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondStatus writes {"error": err} for client errors. Server errors are
// logged and answered with the fixed summary so internal causes stay out of
// the response.
func RespondStatus(w http.ResponseWriter, logger *slog.Logger, status int, summary string, err error) {
	if status < http.StatusInternalServerError {
		RespondError(w, logger, status, err)
		return
	}
	logResponseError(logger, status, err)
	RespondJSON(w, status, map[string]string{"error": summary})
}

// RespondFailure writes {"error": summary, "message": err} for failures where the
// caller benefits from both a stable summary and the underlying cause.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, status int, summary string, err error) {
	logResponseError(logger, status, err)
	RespondJSON(w, status, map[string]string{
		"error":   summary,
		"message": err.Error(),
	})
}

func logResponseError(logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
		return
	}
	logger.Debug("request rejected", "status", status, "error", err)
}
