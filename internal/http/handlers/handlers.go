package handlers

import (
	"log/slog"
	"net/http"

	"github.com/teamrespawntv/halo-quotes/internal/app/quotes"
	domain "github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/http/respond"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
)

const (
	apiName         = "Halo Quotes API"
	apiVersion      = "1.0.0"
	exampleRequest  = "/quote?game=halo-2"
	notFoundMessage = "Not found. Available endpoints: /quote, /stats"
)

// InfoResponse is the document served at the root path.
type InfoResponse struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Endpoints      map[string]string `json:"endpoints"`
	AvailableGames []string          `json:"availableGames"`
	Example        string            `json:"example"`
}

// Handler wires HTTP routes to the quote service.
type Handler struct {
	svc    *quotes.Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *quotes.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Info describes the API and lists the available games in registry order.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, InfoResponse{
		Name:    apiName,
		Version: apiVersion,
		Endpoints: map[string]string{
			"/quote":                "Get a random quote from all games",
			"/quote?game=<game-id>": "Get a random quote from a specific game",
			"/stats":                "Get statistics about total quotes and quotes per game",
		},
		AvailableGames: h.svc.Registry().IDs(),
		Example:        exampleRequest,
	}, h.logger)
}

// Quote serves a random quote, from the game named by ?game= when present.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	gameID := r.URL.Query().Get("game")

	var (
		quote domain.Quote
		err   error
	)
	if gameID != "" {
		quote, err = h.svc.RandomQuote(r.Context(), gameID)
	} else {
		quote, err = h.svc.RandomQuoteAnyGame(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if logger != nil {
		logger.Debug("served quote", slog.String(logging.FieldGameID, quote.GameID))
	}
	respond.JSON(w, http.StatusOK, quote, logger)
}

// Stats serves quote counts for every registered game.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if logger != nil {
		logger.Info("served stats",
			slog.Int(logging.FieldCount, stats.TotalQuotes),
		)
	}
	respond.JSON(w, http.StatusOK, stats, logger)
}

// NotFound answers unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Failure(w, domain.Errorf(domain.KindNotFound, notFoundMessage), logging.FromContext(r.Context(), h.logger))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context(), h.logger)
	kind := domain.KindOf(err)
	if logger != nil {
		level := slog.LevelError
		if kind == domain.KindInvalidGame {
			level = slog.LevelWarn
		}
		logger.Log(r.Context(), level, "request failed", slog.String("kind", kind.String()), "error", err)
	}
	respond.Failure(w, err, logger)
}
