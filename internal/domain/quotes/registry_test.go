package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryOrderAndFilenames(t *testing.T) {
	r := DefaultRegistry()

	want := []string{
		"halo-ce", "halo-2", "halo-3", "halo-wars", "halo-odst", "halo-reach",
		"halo-4", "halo-5", "halo-wars-2", "halo-infinite", "halo-multiplayer",
	}
	assert.Equal(t, want, r.IDs())
	assert.Equal(t, len(want), r.Len())

	for i, e := range r.Entries() {
		assert.Equal(t, e.ID+".json", e.Filename)
		assert.Equal(t, e, r.At(i))
	}
}

func TestLookupIsExactAndCaseSensitive(t *testing.T) {
	r := DefaultRegistry()

	e, ok := r.Lookup("halo-2")
	require.True(t, ok)
	assert.Equal(t, "halo-2.json", e.Filename)

	_, ok = r.Lookup("Halo-2")
	assert.False(t, ok)
	_, ok = r.Lookup("halo-2 ")
	assert.False(t, ok)
}

func TestNewRegistryRejectsBadEntries(t *testing.T) {
	_, err := NewRegistry()
	assert.Error(t, err)

	_, err = NewRegistry(Entry{ID: "a", Filename: "a.json"}, Entry{ID: "a", Filename: "b.json"})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewRegistry(Entry{ID: "", Filename: "a.json"})
	assert.Error(t, err)
}

func TestEntriesReturnsCopy(t *testing.T) {
	r := DefaultRegistry()
	entries := r.Entries()
	entries[0].ID = "mutated"

	assert.Equal(t, "halo-ce", r.At(0).ID)
}
