package quotes

import (
	"encoding/json"
	"io"
)

// File is a decoded quote file: {"gameName": "...", "quotes": ["...", ...]}.
type File struct {
	GameName string
	// Quotes is set only when the document's quotes field is an array made
	// entirely of strings.
	Quotes []string

	// entries is the length of the quotes array, whatever its element types.
	entries int
}

// HasQuotes reports whether the file holds a usable, non-empty list of quotes.
func (f File) HasQuotes() bool {
	return len(f.Quotes) > 0
}

// Count returns the number of entries in the quotes array, or zero when the
// field is missing or not an array.
func (f File) Count() int {
	return f.entries
}

// UnmarshalJSON decodes leniently: a wrong type for gameName or quotes leaves
// that field empty rather than failing the whole document.
func (f *File) UnmarshalJSON(data []byte) error {
	*f = File{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Valid JSON that is not an object carries no quotes.
		return nil
	}

	if raw, ok := fields["gameName"]; ok {
		var name string
		if json.Unmarshal(raw, &name) == nil {
			f.GameName = name
		}
	}

	raw, ok := fields["quotes"]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	f.entries = len(items)

	texts := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) != nil {
			return nil
		}
		texts = append(texts, s)
	}
	if len(texts) > 0 {
		f.Quotes = texts
	}
	return nil
}

// NewFile builds a file in memory, as if decoded from JSON.
func NewFile(gameName string, quotes ...string) File {
	f := File{GameName: gameName, entries: len(quotes)}
	if len(quotes) > 0 {
		f.Quotes = append([]string(nil), quotes...)
	}
	return f
}

// DecodeError reports a quote file body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeFile reads one JSON quote file from r.
func DecodeFile(r io.Reader) (File, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := json.Unmarshal(body, &f); err != nil {
		return File{}, &DecodeError{Err: err}
	}
	return f, nil
}
