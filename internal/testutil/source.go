package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
)

// StubSource serves canned quote files keyed by filename and counts fetches.
// Filenames with neither a file nor an error produce a 404 status error.
type StubSource struct {
	mu    sync.Mutex
	files map[string]quotes.File
	errs  map[string]error
	calls map[string]int
}

// NewStubSource returns an empty stub.
func NewStubSource() *StubSource {
	return &StubSource{
		files: make(map[string]quotes.File),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// WithFile registers a file with the given game name and quotes.
func (s *StubSource) WithFile(filename, gameName string, lines ...string) *StubSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = quotes.NewFile(gameName, lines...)
	return s
}

// WithError makes fetches of filename fail with err.
func (s *StubSource) WithError(filename string, err error) *StubSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[filename] = err
	return s
}

// Fetch implements origin.Source.
func (s *StubSource) Fetch(ctx context.Context, filename string) (quotes.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[filename]++
	if err := ctx.Err(); err != nil {
		return quotes.File{}, err
	}
	if err, ok := s.errs[filename]; ok {
		return quotes.File{}, err
	}
	if f, ok := s.files[filename]; ok {
		return f, nil
	}
	return quotes.File{}, origin.NewStatusError(filename, http.StatusNotFound, "")
}

// Calls returns how many times filename was fetched.
func (s *StubSource) Calls(filename string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[filename]
}

// HaloSource returns a stub holding a few quotes for every default registry game.
func HaloSource() *StubSource {
	src := NewStubSource()
	for _, e := range quotes.DefaultRegistry().Entries() {
		src.WithFile(e.Filename, GameName(e.ID), e.ID+" quote one", e.ID+" quote two", e.ID+" quote three")
	}
	return src
}

// GameName derives a display name for a registry id, e.g. "halo-2" -> "Game halo-2".
func GameName(id string) string {
	return "Game " + id
}
