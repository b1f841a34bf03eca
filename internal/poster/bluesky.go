package poster

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/teamrespawntv/halo-quotes/internal/config"
)

const (
	blueskyAuthFailed   = "Bluesky authentication failed. Please check your credentials."
	blueskyMissingCreds = "Bluesky credentials are missing. Please set BLUESKY_USERNAME and BLUESKY_PASSWORD in your .env file."
	blueskyPostURL      = "https://bsky.app/profile/"
	blueskyCollection   = "app.bsky.feed.post"
)

// Bluesky publishes posts through the AT Protocol XRPC endpoints.
type Bluesky struct {
	cfg        config.BlueskyConfig
	httpClient httpDoer
	now        func() time.Time
}

// NewBluesky builds a Bluesky publisher. client may be nil.
func NewBluesky(cfg config.BlueskyConfig, client *http.Client) *Bluesky {
	if cfg.Service == "" {
		cfg.Service = "https://bsky.social"
	}
	cfg.Service = strings.TrimRight(cfg.Service, "/")
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Bluesky{cfg: cfg, httpClient: client, now: time.Now}
}

func (b *Bluesky) Name() string { return "bluesky" }

func (b *Bluesky) Limit() int { return BlueskyLimit }

func (b *Bluesky) CheckCredentials() error {
	if !b.cfg.HasCredentials() {
		return &CredentialsError{Message: blueskyMissingCreds}
	}
	return nil
}

type blueskySession struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
}

type blueskyRecord struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type blueskyCreated struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Publish logs in with the configured identifier and app password, then creates a feed post.
func (b *Bluesky) Publish(ctx context.Context, text string) (string, error) {
	if err := b.CheckCredentials(); err != nil {
		return "", err
	}

	var session blueskySession
	err := postJSON(ctx, b.httpClient, b.cfg.Service+"/xrpc/com.atproto.server.createSession", nil,
		map[string]string{"identifier": b.cfg.Username, "password": b.cfg.Password},
		&session, b.statusError)
	if err != nil {
		return "", err
	}
	if session.AccessJwt == "" || session.DID == "" {
		return "", errors.New("bluesky session response missing accessJwt or did")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+session.AccessJwt)
	var created blueskyCreated
	err = postJSON(ctx, b.httpClient, b.cfg.Service+"/xrpc/com.atproto.repo.createRecord", header,
		map[string]any{
			"repo":       session.DID,
			"collection": blueskyCollection,
			"record": blueskyRecord{
				Type:      blueskyCollection,
				Text:      text,
				CreatedAt: b.now().UTC().Format(time.RFC3339Nano),
			},
		},
		&created, b.statusError)
	if err != nil {
		return "", err
	}

	rkey := created.URI[strings.LastIndex(created.URI, "/")+1:]
	if rkey == "" {
		return "", nil
	}
	return blueskyPostURL + b.cfg.Username + "/post/" + rkey, nil
}

func (b *Bluesky) statusError(code int) error {
	apiErr := &APIError{Target: b.Name(), StatusCode: code}
	if code == http.StatusUnauthorized {
		apiErr.Message = blueskyAuthFailed
	}
	return apiErr
}
