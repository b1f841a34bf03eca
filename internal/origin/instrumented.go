package origin

import (
	"context"
	"log/slog"
	"time"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
)

// instrumentedSource records every fetch and logs failures. It never retries.
type instrumentedSource struct {
	inner    Source
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewInstrumentedSource wraps inner with fetch metrics and failure logging under the given source name.
func NewInstrumentedSource(inner Source, name string, logger *slog.Logger, recorder *metrics.Recorder) Source {
	return &instrumentedSource{
		inner:    inner,
		name:     name,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (s *instrumentedSource) Fetch(ctx context.Context, filename string) (quotes.File, error) {
	start := s.now()
	file, err := s.inner.Fetch(ctx, filename)
	duration := s.now().Sub(start)

	s.recorder.RecordOriginFetch(s.name, filename, duration, err)

	if err != nil {
		logging.Warn(ctx, s.logger, "quote file fetch failed",
			slog.String(logging.FieldSource, s.name),
			slog.String(logging.FieldFilename, filename),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			"error", err,
		)
		return quotes.File{}, err
	}
	logging.Debug(ctx, s.logger, "quote file fetched",
		slog.String(logging.FieldSource, s.name),
		slog.String(logging.FieldFilename, filename),
		slog.Int(logging.FieldCount, file.Count()),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	return file, nil
}
