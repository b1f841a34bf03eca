// Package respond writes JSON responses and maps request failures to HTTP statuses.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
)

// JSON writes payload indented by two spaces.
func JSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// Error writes a compact {"error": message} body.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string{"error": message}); err != nil && logger != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// Failure writes err with the status for its kind.
func Failure(w http.ResponseWriter, err error, logger *slog.Logger) {
	Error(w, StatusFor(quotes.KindOf(err)), quotes.Message(err), logger)
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind quotes.Kind) int {
	switch kind {
	case quotes.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case quotes.KindInvalidGame:
		return http.StatusBadRequest
	case quotes.KindNotFound:
		return http.StatusNotFound
	case quotes.KindUpstreamFetch, quotes.KindNoQuotes, quotes.KindMalformedResponse, quotes.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
