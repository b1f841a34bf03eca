package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/teamrespawntv/halo-quotes/internal/logging"
)

// NewBufferLogger returns a debug-level text logger and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("text")
}

// NewJSONBufferLogger is NewBufferLogger with one JSON object per line, for
// assertions on exact field values.
func NewJSONBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger("json")
}

func newBufferLogger(format string) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: format, Output: buf})
	return logger, buf
}

// LogRecords decodes every line written by a JSON buffer logger.
func LogRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("invalid log line %q: %v", scanner.Text(), err)
		}
		records = append(records, rec)
	}
	return records
}

// FindLogRecord returns the first record with the given message.
func FindLogRecord(t *testing.T, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()
	for _, rec := range LogRecords(t, buf) {
		if rec["msg"] == msg {
			return rec
		}
	}
	t.Fatalf("no log record %q in %s", msg, buf.String())
	return nil
}
