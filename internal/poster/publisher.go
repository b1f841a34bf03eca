package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Publisher posts formatted text to a social network.
type Publisher interface {
	// Name identifies the target in logs.
	Name() string
	// Limit is the maximum post length in characters.
	Limit() int
	// CheckCredentials reports missing credentials without making a request.
	CheckCredentials() error
	// Publish posts text and returns a public URL for the new post.
	Publish(ctx context.Context, text string) (string, error)
}

// APIError is a non-success response from a posting API.
type APIError struct {
	Target     string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s request failed: %d %s", e.Target, e.StatusCode, http.StatusText(e.StatusCode))
}

// CredentialsError reports missing credentials, detected before any request is made.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string { return e.Message }

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// postJSON sends body as JSON and decodes a 2xx response into out. Other
// statuses are returned via onStatus, which builds the caller's error.
func postJSON(ctx context.Context, client httpDoer, url string, header http.Header, body, out any, onStatus func(int) error) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return onStatus(resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
