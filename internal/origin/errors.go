package origin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError captures a non-success response from the quote origin.
type StatusError struct {
	Filename   string
	StatusCode int
	// Reason is the status text, e.g. "Not Found".
	Reason string
}

// NewStatusError builds a StatusError from a response status line such as "404 Not Found".
func NewStatusError(filename string, code int, status string) *StatusError {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		reason = http.StatusText(code)
	}
	return &StatusError{Filename: filename, StatusCode: code, Reason: reason}
}

func (e *StatusError) Error() string {
	return strings.TrimSpace(fmt.Sprintf("Failed to fetch quotes: %d %s", e.StatusCode, e.Reason))
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
