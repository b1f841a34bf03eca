// Package poster publishes a random quote from the local quote files to a social network.
package poster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"unicode/utf8"

	"github.com/teamrespawntv/halo-quotes/internal/logging"
)

// Result describes one run.
type Result struct {
	Entry Entry
	Text  string
	// URL is empty on dry runs or when the target did not return a post id.
	URL string
}

// Runner loads the quote pool, picks a quote and posts it.
type Runner struct {
	catalog   Catalog
	publisher Publisher
	logger    *slog.Logger
	out       io.Writer
	dryRun    bool
	intn      func(int) int
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDryRun prints the post instead of publishing it.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) { r.dryRun = dryRun }
}

// WithOutput sets where the selected post is printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithIntn replaces the random index source.
func WithIntn(intn func(int) int) Option {
	return func(r *Runner) { r.intn = intn }
}

// NewRunner constructs a Runner.
func NewRunner(catalog Catalog, publisher Publisher, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
		out:       io.Discard,
		intn:      rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs a single post.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	pool, err := LoadPool(ctx, r.catalog, r.logger)
	if err != nil {
		return Result{}, err
	}
	entry, err := Pick(pool, r.intn)
	if err != nil {
		return Result{}, err
	}

	text := Format(entry.Quote, entry.GameName, r.publisher.Limit())
	res := Result{Entry: entry, Text: text}

	logging.Info(ctx, r.logger, "selected quote",
		slog.String(logging.FieldTarget, r.publisher.Name()),
		slog.String("game", entry.GameName),
		slog.Int(logging.FieldCount, len(pool)),
		slog.Int("length", utf8.RuneCountInString(text)),
	)
	fmt.Fprintf(r.out, "%s\n", text)

	if r.dryRun {
		logging.Info(ctx, r.logger, "dry run, not posting", slog.String(logging.FieldTarget, r.publisher.Name()))
		return res, nil
	}

	url, err := r.publisher.Publish(ctx, text)
	if err != nil {
		return res, err
	}
	res.URL = url
	logging.Info(ctx, r.logger, "quote posted", slog.String(logging.FieldTarget, r.publisher.Name()), slog.String("url", url))
	return res, nil
}
