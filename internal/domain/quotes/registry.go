package quotes

import (
	"errors"
	"fmt"
)

// Entry maps a game identifier to the quote file that holds its quotes.
type Entry struct {
	ID       string
	Filename string
}

// Registry is the ordered, read-only table of known games. The order is the
// canonical order used in aggregate output.
type Registry struct {
	entries []Entry
	index   map[string]int
}

var defaultEntries = []Entry{
	{ID: "halo-ce", Filename: "halo-ce.json"},
	{ID: "halo-2", Filename: "halo-2.json"},
	{ID: "halo-3", Filename: "halo-3.json"},
	{ID: "halo-wars", Filename: "halo-wars.json"},
	{ID: "halo-odst", Filename: "halo-odst.json"},
	{ID: "halo-reach", Filename: "halo-reach.json"},
	{ID: "halo-4", Filename: "halo-4.json"},
	{ID: "halo-5", Filename: "halo-5.json"},
	{ID: "halo-wars-2", Filename: "halo-wars-2.json"},
	{ID: "halo-infinite", Filename: "halo-infinite.json"},
	{ID: "halo-multiplayer", Filename: "halo-multiplayer.json"},
}

// NewRegistry builds a registry from entries, preserving their order.
func NewRegistry(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.New("registry: no games")
	}
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" || e.Filename == "" {
			return nil, fmt.Errorf("registry: entry %+v needs an id and a filename", e)
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate game id %q", e.ID)
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// DefaultRegistry returns the Halo games in release order.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultEntries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a game by exact, case-sensitive identifier.
func (r *Registry) Lookup(id string) (Entry, bool) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Len returns the number of registered games.
func (r *Registry) Len() int { return len(r.entries) }

// At returns the i-th entry in canonical order.
func (r *Registry) At(i int) Entry { return r.entries[i] }

// Entries returns a copy of all entries in canonical order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns the game identifiers in canonical order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}
