package middleware

import (
	"net/http"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/http/respond"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
)

const methodNotAllowedMessage = "Method not allowed. Only GET requests are supported."

// SetCORSHeaders writes the fixed cross-origin and content-type headers.
func SetCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Content-Type", "application/json")
}

// CORS sets the CORS headers on every response and answers OPTIONS preflights
// with 204 on any path. Methods other than GET are rejected with 405 before routing.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetCORSHeaders(w.Header())

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			next.ServeHTTP(w, r)
		default:
			logger := logging.FromContext(r.Context(), nil)
			respond.Failure(w, quotes.Errorf(quotes.KindMethodNotAllowed, methodNotAllowedMessage), logger)
		}
	})
}
