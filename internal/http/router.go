package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/teamrespawntv/halo-quotes/internal/http/handlers"
	"github.com/teamrespawntv/halo-quotes/internal/http/middleware"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
)

// NewRouter builds the quote API. Method checks and CORS run before route
// matching, so OPTIONS and non-GET requests behave the same on every path.
// A positive timeout cancels the request context, and with it any origin
// fetch still in flight.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, timeout time.Duration) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimiddleware.Recoverer)
	if timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}
	r.Use(middleware.CORS)

	r.Get("/", handler.Info)
	r.Get("/quote", handler.Quote)
	r.Get("/quote/", handler.Quote)
	r.Get("/stats", handler.Stats)
	r.Get("/stats/", handler.Stats)
	r.NotFound(handler.NotFound)

	return r
}
