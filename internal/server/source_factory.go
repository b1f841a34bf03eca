package server

import (
	"log/slog"

	"github.com/teamrespawntv/halo-quotes/internal/config"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
	"github.com/teamrespawntv/halo-quotes/internal/origin/httporigin"
	"github.com/teamrespawntv/halo-quotes/internal/origin/localdir"
)

// sourceFactory assembles the quote origin with the shared instrumentation wrapper.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, metrics *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: metrics}
}

func (f sourceFactory) build(cfg config.Config) origin.Source {
	base, name := selectSource(cfg, f.logger)
	return origin.NewInstrumentedSource(base, name, f.logger, f.metrics)
}

// selectSource returns the configured origin and the name it reports in metrics and logs.
func selectSource(cfg config.Config, logger *slog.Logger) (origin.Source, string) {
	switch cfg.Source {
	case config.SourceRemote, "":
		return remoteSource(cfg), config.SourceRemote
	case config.SourceLocal:
		return localdir.NewDir(cfg.Origin.Dir), config.SourceLocal
	default:
		if logger != nil {
			logger.Warn("unknown quote source, falling back to remote", slog.String("source", cfg.Source))
		}
		return remoteSource(cfg), config.SourceRemote
	}
}

func remoteSource(cfg config.Config) *httporigin.Client {
	return httporigin.NewClient(httporigin.Config{
		BaseURL: cfg.Origin.BaseURL,
		Timeout: cfg.Origin.Timeout,
	})
}
