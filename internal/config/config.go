package config

import "time"

// Config holds runtime configuration for the server.
type Config struct {
	Port   string
	Source string
	// RequestTimeout cancels a request's context, and so its origin fetches,
	// once exceeded. Zero disables it.
	RequestTimeout time.Duration
	Origin         OriginConfig
	Log            LogConfig
	Metrics        MetricsConfig
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		Source:         envOrDefault(envSource, defaultSource),
		RequestTimeout: durationEnvOrDefault(envReqTimeout, defaultRequestTimeout),
		Origin:         loadOrigin(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, ""),
			Format: envOrDefault(envLogFormat, ""),
		},
		Metrics: loadMetrics(),
	}
}
