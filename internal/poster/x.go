package poster

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/teamrespawntv/halo-quotes/internal/config"
)

const (
	xAuthFailed    = "X (Twitter) API authentication failed. Please check your credentials."
	xForbidden     = "X (Twitter) API access forbidden. Check your app permissions."
	xRateLimited   = "X (Twitter) API rate limit exceeded. Please wait before trying again."
	xMissingCreds  = "X (Twitter) API credentials are missing. Please set TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN, and TWITTER_ACCESS_SECRET in your .env file."
	xStatusURLBase = "https://twitter.com/user/status/"
)

// X publishes posts through the v2 tweets endpoint with OAuth 1.0a user context.
type X struct {
	cfg  config.XConfig
	base *http.Client
}

// NewX builds an X publisher. base, when set, carries the signed requests.
func NewX(cfg config.XConfig, base *http.Client) *X {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.twitter.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &X{cfg: cfg, base: base}
}

func (x *X) Name() string { return "x" }

func (x *X) Limit() int { return XLimit }

func (x *X) CheckCredentials() error {
	if !x.cfg.HasCredentials() {
		return &CredentialsError{Message: xMissingCreds}
	}
	return nil
}

type xCreated struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Publish creates a post and returns its status URL.
func (x *X) Publish(ctx context.Context, text string) (string, error) {
	if err := x.CheckCredentials(); err != nil {
		return "", err
	}

	if x.base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, x.base)
	}
	client := oauth1.NewConfig(x.cfg.APIKey, x.cfg.APISecret).
		Client(ctx, oauth1.NewToken(x.cfg.AccessToken, x.cfg.AccessSecret))

	var created xCreated
	err := postJSON(ctx, client, x.cfg.BaseURL+"/2/tweets", nil, map[string]string{"text": text}, &created, x.statusError)
	if err != nil {
		return "", err
	}
	if created.Data.ID == "" {
		return "", errors.New("x response missing post id")
	}
	return xStatusURLBase + created.Data.ID, nil
}

func (x *X) statusError(code int) error {
	apiErr := &APIError{Target: x.Name(), StatusCode: code}
	switch code {
	case http.StatusUnauthorized:
		apiErr.Message = xAuthFailed
	case http.StatusForbidden:
		apiErr.Message = xForbidden
	case http.StatusTooManyRequests:
		apiErr.Message = xRateLimited
	}
	return apiErr
}
