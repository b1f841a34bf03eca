package poster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
)

// ErrNoQuotes is returned when no quote file contributed any quotes.
var ErrNoQuotes = errors.New("No quotes found")

// Entry is one quote together with the game it came from.
type Entry struct {
	Quote    string
	GameName string
}

// Catalog is a quote source that can list the files it holds.
type Catalog interface {
	origin.Source
	Filenames() ([]string, error)
}

// LoadPool reads every file in the catalog and pools their quotes. Files that
// fail to load or have no game name are logged and skipped.
func LoadPool(ctx context.Context, catalog Catalog, logger *slog.Logger) ([]Entry, error) {
	names, err := catalog.Filenames()
	if err != nil {
		return nil, err
	}

	var pool []Entry
	for _, name := range names {
		file, err := catalog.Fetch(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logging.Warn(ctx, logger, "skipping quote file", slog.String(logging.FieldFilename, name), slog.Any("error", err))
			continue
		}
		if file.GameName == "" {
			logging.Warn(ctx, logger, "skipping quote file without gameName", slog.String(logging.FieldFilename, name))
			continue
		}
		pool = append(pool, entriesOf(file)...)
	}

	if len(pool) == 0 {
		return nil, ErrNoQuotes
	}
	return pool, nil
}

func entriesOf(file quotes.File) []Entry {
	entries := make([]Entry, 0, len(file.Quotes))
	for _, q := range file.Quotes {
		entries = append(entries, Entry{Quote: q, GameName: file.GameName})
	}
	return entries
}

// Pick returns a uniformly chosen entry; every quote is equally likely
// regardless of how many quotes its game has.
func Pick(pool []Entry, intn func(int) int) (Entry, error) {
	if len(pool) == 0 {
		return Entry{}, ErrNoQuotes
	}
	return pool[intn(len(pool))], nil
}
