package quotes

import (
	"context"
	"errors"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	domain "github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
)

// Service serves random quotes and quote statistics from a Source.
type Service struct {
	registry *domain.Registry
	source   origin.Source
	recorder *metrics.Recorder
	intn     func(n int) int
}

// NewService constructs a Service over the registry and source. recorder may be nil.
func NewService(registry *domain.Registry, source origin.Source, recorder *metrics.Recorder) *Service {
	return &Service{
		registry: registry,
		source:   source,
		recorder: recorder,
		intn:     rand.IntN,
	}
}

// Registry returns the game registry the service was built with.
func (s *Service) Registry() *domain.Registry {
	return s.registry
}

// RandomQuote returns a random quote from the game with the given identifier.
func (s *Service) RandomQuote(ctx context.Context, gameID string) (domain.Quote, error) {
	entry, ok := s.registry.Lookup(gameID)
	if !ok {
		return domain.Quote{}, domain.InvalidGame(gameID, s.registry.IDs())
	}
	return s.quoteFrom(ctx, entry, entry.ID)
}

// RandomQuoteAnyGame picks a game uniformly (not weighted by quote count) and returns one of its quotes.
func (s *Service) RandomQuoteAnyGame(ctx context.Context) (domain.Quote, error) {
	entry := s.registry.At(s.intn(s.registry.Len()))
	return s.quoteFrom(ctx, entry, entry.Filename)
}

func (s *Service) quoteFrom(ctx context.Context, entry domain.Entry, label string) (domain.Quote, error) {
	file, err := s.source.Fetch(ctx, entry.Filename)
	if err != nil {
		return domain.Quote{}, classify(err)
	}
	if !file.HasQuotes() {
		return domain.Quote{}, domain.NoQuotesFound(label)
	}

	s.recorder.RecordQuoteServed(entry.ID)
	return domain.Quote{
		Quote:  file.Quotes[s.intn(len(file.Quotes))],
		Game:   file.GameName,
		GameID: entry.ID,
	}, nil
}

// Stats fetches every registered file concurrently and reports per-game counts
// in registry order. A failed fetch becomes an annotated zero-count entry.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	entries := s.registry.Entries()
	results := make([]domain.GameCount, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		g.Go(func() error {
			results[i] = s.countFor(ctx, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Stats{}, domain.Wrap(domain.KindInternal, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, domain.Wrap(domain.KindInternal, err)
	}

	stats := domain.Stats{TotalGames: len(entries)}
	for i, entry := range entries {
		stats.QuotesPerGame.Set(entry.ID, results[i])
		stats.TotalQuotes += results[i].Count
	}
	return stats, nil
}

func (s *Service) countFor(ctx context.Context, entry domain.Entry) domain.GameCount {
	file, err := s.source.Fetch(ctx, entry.Filename)
	if err != nil {
		return domain.GameCount{GameName: entry.ID, Count: 0, Error: domain.Message(err)}
	}
	name := file.GameName
	if name == "" {
		name = entry.ID
	}
	return domain.GameCount{GameName: name, Count: file.Count()}
}

// classify tags origin errors with the matching failure kind.
func classify(err error) error {
	var qerr *domain.Error
	if errors.As(err, &qerr) {
		return qerr
	}
	if _, ok := origin.AsStatusError(err); ok {
		return domain.Wrap(domain.KindUpstreamFetch, err)
	}
	var decErr *domain.DecodeError
	if errors.As(err, &decErr) {
		return domain.Wrap(domain.KindMalformedResponse, err)
	}
	return domain.Wrap(domain.KindInternal, err)
}
