// Package localdir serves quote files from a directory on disk, for local
// development and for tools that work against a checkout of the quotes.
package localdir

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
)

// Source reads quote files from an fs.FS.
type Source struct {
	fsys fs.FS
}

// New creates a source backed by fsys.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// NewDir creates a source backed by the directory at dir.
func NewDir(dir string) *Source {
	return New(os.DirFS(dir))
}

// Fetch reads filename from the directory. A missing file is reported the way
// the remote host reports it, as a 404 StatusError.
func (s *Source) Fetch(ctx context.Context, filename string) (quotes.File, error) {
	if err := ctx.Err(); err != nil {
		return quotes.File{}, err
	}
	if !fs.ValidPath(filename) || path.Base(filename) != filename {
		return quotes.File{}, origin.NewStatusError(filename, http.StatusNotFound, "")
	}

	f, err := s.fsys.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return quotes.File{}, origin.NewStatusError(filename, http.StatusNotFound, "")
		}
		return quotes.File{}, err
	}
	defer f.Close()

	return quotes.DecodeFile(f)
}

// Filenames lists the *.json files in the directory, sorted by name.
func (s *Source) Filenames() ([]string, error) {
	return fs.Glob(s.fsys, "*.json")
}
