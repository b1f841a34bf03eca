package config

// PosterConfig holds settings for the quote posting tool.
type PosterConfig struct {
	QuotesDir string
	Bluesky   BlueskyConfig
	X         XConfig
}

// BlueskyConfig holds Bluesky account credentials.
type BlueskyConfig struct {
	Service  string
	Username string
	Password string
}

// XConfig holds OAuth 1.0a credentials for the X API.
type XConfig struct {
	BaseURL      string
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// LoadPoster reads posting tool configuration from the environment.
func LoadPoster() PosterConfig {
	return PosterConfig{
		QuotesDir: envOrDefault(envQuotesDir, defaultQuotesDir),
		Bluesky: BlueskyConfig{
			Service:  envOrDefault(envBlueskyService, defaultBlueskyService),
			Username: envOrDefault(envBlueskyUsername, ""),
			Password: envOrDefault(envBlueskyPassword, ""),
		},
		X: XConfig{
			BaseURL:      envOrDefault(envXBaseURL, defaultXBaseURL),
			APIKey:       envOrDefault(envXAPIKey, ""),
			APISecret:    envOrDefault(envXAPISecret, ""),
			AccessToken:  envOrDefault(envXAccessToken, ""),
			AccessSecret: envOrDefault(envXAccessSecret, ""),
		},
	}
}

// HasCredentials reports whether both username and password are set.
func (c BlueskyConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// HasCredentials reports whether all four OAuth values are set.
func (c XConfig) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}
