package config

import "time"

// OriginConfig controls where quote files are read from.
type OriginConfig struct {
	BaseURL string
	Dir     string
	// Timeout is zero unless ORIGIN_TIMEOUT is set; the server's own deadlines apply otherwise.
	Timeout time.Duration
}

func loadOrigin() OriginConfig {
	return OriginConfig{
		BaseURL: envOrDefault(envBaseURL, defaultBaseURL),
		Dir:     envOrDefault(envQuotesDir, defaultQuotesDir),
		Timeout: durationEnvOrDefault(envOriginTimeout, 0),
	}
}
