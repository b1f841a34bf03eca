package quotes

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a request failure.
type Kind int

const (
	KindInternal Kind = iota
	KindMethodNotAllowed
	KindInvalidGame
	KindUpstreamFetch
	KindNoQuotes
	KindMalformedResponse
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindInvalidGame:
		return "invalid_game"
	case KindUpstreamFetch:
		return "upstream_fetch_failure"
	case KindNoQuotes:
		return "no_quotes_found"
	case KindMalformedResponse:
		return "malformed_response"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

const internalMessage = "Internal server error"

// Error is a request failure carrying its Kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil && e.Err.Error() != "" {
		return e.Err.Error()
	}
	return internalMessage
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind whose message is err's message.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// InvalidGame reports an identifier missing from the registry.
func InvalidGame(id string, available []string) *Error {
	return Errorf(KindInvalidGame, "Invalid game: %s. Available games: %s", id, strings.Join(available, ", "))
}

// NoQuotesFound reports a file without a usable quotes list.
func NoQuotesFound(name string) *Error {
	return Errorf(KindNoQuotes, "No quotes found in %s", name)
}

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr.Kind
	}
	return KindInternal
}

// Message returns the caller-facing text for err.
func Message(err error) string {
	if err == nil || err.Error() == "" {
		return internalMessage
	}
	return err.Error()
}
