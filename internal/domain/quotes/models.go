package quotes

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Quote is a single served quote.
type Quote struct {
	Quote  string `json:"quote"`
	Game   string `json:"game"`
	GameID string `json:"gameId"`
}

// GameCount is the per-game entry of a stats response.
type GameCount struct {
	GameName string `json:"gameName"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}

// Stats summarizes quote counts across every registered game.
type Stats struct {
	TotalQuotes   int        `json:"totalQuotes"`
	TotalGames    int        `json:"totalGames"`
	QuotesPerGame GameCounts `json:"quotesPerGame"`
}

// GameCounts is a game id -> GameCount mapping that keeps insertion order,
// both in memory and when encoded as a JSON object.
type GameCounts struct {
	order   []string
	entries map[string]GameCount
}

// Set stores gc under id. A new id is appended to the order; an existing one keeps its position.
func (c *GameCounts) Set(id string, gc GameCount) {
	if c.entries == nil {
		c.entries = make(map[string]GameCount)
	}
	if _, ok := c.entries[id]; !ok {
		c.order = append(c.order, id)
	}
	c.entries[id] = gc
}

// Get returns the entry for id.
func (c GameCounts) Get(id string) (GameCount, bool) {
	gc, ok := c.entries[id]
	return gc, ok
}

// Keys returns the ids in order.
func (c GameCounts) Keys() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of entries.
func (c GameCounts) Len() int { return len(c.order) }

func (c GameCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(id); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(c.entries[id]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *GameCounts) UnmarshalJSON(data []byte) error {
	*c = GameCounts{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("quotesPerGame: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("quotesPerGame: expected key, got %v", tok)
		}
		var gc GameCount
		if err := dec.Decode(&gc); err != nil {
			return err
		}
		c.Set(id, gc)
	}
	_, err = dec.Token()
	return err
}
