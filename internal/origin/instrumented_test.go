package origin

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
)

func TestInstrumentedSourceRecordsSuccess(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := SourceFunc(func(ctx context.Context, filename string) (quotes.File, error) {
		return quotes.NewFile("Halo 2", "I need a weapon."), nil
	})

	src := NewInstrumentedSource(inner, "remote", nil, rec)
	file, err := src.Fetch(context.Background(), "halo-2.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.GameName != "Halo 2" {
		t.Fatalf("expected file passthrough, got %+v", file)
	}
	if snap := rec.Snapshot("remote"); snap.Fetches != 1 || snap.Errors != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestInstrumentedSourceRecordsAndLogsFailureWithoutRetry(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := metrics.NewRecorder()
	calls := 0
	inner := SourceFunc(func(ctx context.Context, filename string) (quotes.File, error) {
		calls++
		return quotes.File{}, errors.New("connection reset")
	})

	src := NewInstrumentedSource(inner, "remote", logger, rec)
	if _, err := src.Fetch(context.Background(), "halo-3.json"); err == nil {
		t.Fatalf("expected error")
	}

	if calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", calls)
	}
	if snap := rec.Snapshot("remote"); snap.Fetches != 1 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if !strings.Contains(buf.String(), "filename=halo-3.json") {
		t.Fatalf("expected filename in log, got %q", buf.String())
	}
}
