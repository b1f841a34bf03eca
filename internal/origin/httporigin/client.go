package httporigin

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
)

// Config controls how the client reaches the static quote host.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout applies only when HTTPClient is nil; zero means no client-side timeout.
	Timeout time.Duration
}

// Client fetches quote files from BASE_URL/<filename>.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Fetch downloads and decodes one quote file. Any 2xx status is success.
func (c *Client) Fetch(ctx context.Context, filename string) (quotes.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(filename), nil)
	if err != nil {
		return quotes.File{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return quotes.File{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return quotes.File{}, origin.NewStatusError(filename, resp.StatusCode, resp.Status)
	}

	return quotes.DecodeFile(resp.Body)
}
