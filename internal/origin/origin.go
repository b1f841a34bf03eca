package origin

import (
	"context"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
)

// Source retrieves quote files by filename.
type Source interface {
	Fetch(ctx context.Context, filename string) (quotes.File, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, filename string) (quotes.File, error)

func (f SourceFunc) Fetch(ctx context.Context, filename string) (quotes.File, error) {
	return f(ctx, filename)
}
