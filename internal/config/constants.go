package config

import "time"

const (
	envPort          = "PORT"
	envSource        = "QUOTES_SOURCE"
	envBaseURL       = "QUOTES_BASE_URL"
	envQuotesDir     = "QUOTES_DIR"
	envOriginTimeout = "ORIGIN_TIMEOUT"
	envReqTimeout    = "REQUEST_TIMEOUT"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	envBlueskyService  = "BLUESKY_SERVICE"
	envBlueskyUsername = "BLUESKY_USERNAME"
	envBlueskyPassword = "BLUESKY_PASSWORD"
	envXAPIKey         = "TWITTER_API_KEY"
	envXAPISecret      = "TWITTER_API_SECRET"
	envXAccessToken    = "TWITTER_ACCESS_TOKEN"
	envXAccessSecret   = "TWITTER_ACCESS_SECRET"
	envXBaseURL        = "TWITTER_API_BASE_URL"

	defaultPort        = "8787"
	defaultSource      = SourceRemote
	defaultBaseURL     = "https://haloquotes.teamrespawntv.com/quotes"
	defaultQuotesDir   = "quotes"
	defaultMetricsPort = "9090"
	defaultServiceName = "halo-quotes"

	defaultRequestTimeout = 25 * time.Second

	defaultBlueskyService = "https://bsky.social"
	defaultXBaseURL       = "https://api.twitter.com"
)

// Quote source names accepted by QUOTES_SOURCE.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)
