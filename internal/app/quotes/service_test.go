package quotes

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/metrics"
	"github.com/teamrespawntv/halo-quotes/internal/origin"
	"github.com/teamrespawntv/halo-quotes/internal/testutil"
)

func newTestService(src origin.Source) *Service {
	return NewService(domain.DefaultRegistry(), src, metrics.NewRecorder())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestRandomQuoteForEveryRegisteredGame(t *testing.T) {
	src := testutil.HaloSource()
	svc := newTestService(src)

	for _, e := range svc.Registry().Entries() {
		q, err := svc.RandomQuote(context.Background(), e.ID)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", e.ID, err)
		}
		if q.GameID != e.ID {
			t.Fatalf("expected gameId %s, got %s", e.ID, q.GameID)
		}
		if q.Game != testutil.GameName(e.ID) {
			t.Fatalf("expected game name from file, got %s", q.Game)
		}
		file, _ := src.Fetch(context.Background(), e.Filename)
		if !contains(file.Quotes, q.Quote) {
			t.Fatalf("quote %q not in %s", q.Quote, e.Filename)
		}
	}
}

func TestRandomQuoteUsesInjectedRandomness(t *testing.T) {
	src := testutil.NewStubSource().WithFile("halo-3.json", "Halo 3", "a", "b", "c")
	svc := newTestService(src)
	svc.intn = func(n int) int { return n - 1 }

	q, err := svc.RandomQuote(context.Background(), "halo-3")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if q.Quote != "c" {
		t.Fatalf("expected last quote, got %q", q.Quote)
	}
}

func TestRandomQuoteInvalidGame(t *testing.T) {
	src := testutil.HaloSource()
	svc := newTestService(src)

	_, err := svc.RandomQuote(context.Background(), "halo-6")
	if domain.KindOf(err) != domain.KindInvalidGame {
		t.Fatalf("expected invalid game kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid game") || !strings.Contains(err.Error(), "halo-6") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !strings.Contains(err.Error(), "halo-ce, halo-2, halo-3") {
		t.Fatalf("expected available games listed in order, got %q", err.Error())
	}
	if src.Calls("halo-6.json") != 0 {
		t.Fatalf("expected no fetch for unknown game")
	}
}

func TestRandomQuoteErrorKinds(t *testing.T) {
	cases := []struct {
		name    string
		src     *testutil.StubSource
		kind    domain.Kind
		message string
	}{
		{
			name:    "upstream status",
			src:     testutil.NewStubSource().WithError("halo-2.json", origin.NewStatusError("halo-2.json", 503, "503 Service Unavailable")),
			kind:    domain.KindUpstreamFetch,
			message: "Failed to fetch quotes: 503 Service Unavailable",
		},
		{
			name:    "empty quotes",
			src:     testutil.NewStubSource().WithFile("halo-2.json", "Halo 2"),
			kind:    domain.KindNoQuotes,
			message: "No quotes found in halo-2",
		},
		{
			name:    "malformed body",
			src:     testutil.NewStubSource().WithError("halo-2.json", &domain.DecodeError{Err: errors.New("invalid character '<' looking for beginning of value")}),
			kind:    domain.KindMalformedResponse,
			message: "invalid character '<' looking for beginning of value",
		},
		{
			name:    "network failure",
			src:     testutil.NewStubSource().WithError("halo-2.json", errors.New("dial tcp: connection refused")),
			kind:    domain.KindInternal,
			message: "dial tcp: connection refused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestService(tc.src).RandomQuote(context.Background(), "halo-2")
			if got := domain.KindOf(err); got != tc.kind {
				t.Fatalf("expected kind %s, got %s (%v)", tc.kind, got, err)
			}
			if err.Error() != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, err.Error())
			}
		})
	}
}

func TestRandomQuoteAnyGamePicksFromRegistry(t *testing.T) {
	src := testutil.HaloSource()
	svc := newTestService(src)
	ids := svc.Registry().IDs()

	for i := 0; i < 50; i++ {
		q, err := svc.RandomQuoteAnyGame(context.Background())
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if !contains(ids, q.GameID) {
			t.Fatalf("unexpected game %s", q.GameID)
		}
		if !strings.HasPrefix(q.Quote, q.GameID+" quote") {
			t.Fatalf("quote %q does not belong to %s", q.Quote, q.GameID)
		}
	}
}

func TestRandomQuoteAnyGameIsUniformOverGames(t *testing.T) {
	svc := newTestService(testutil.HaloSource())
	var picks []int
	svc.intn = func(n int) int {
		picks = append(picks, n)
		return 0
	}

	q, err := svc.RandomQuoteAnyGame(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if q.GameID != "halo-ce" {
		t.Fatalf("expected first registry game, got %s", q.GameID)
	}
	if len(picks) != 2 || picks[0] != svc.Registry().Len() || picks[1] != 3 {
		t.Fatalf("expected game pick over registry size then quote pick, got %v", picks)
	}
}

func TestRandomQuoteAnyGameNoQuotesNamesFile(t *testing.T) {
	src := testutil.NewStubSource().WithFile("halo-ce.json", "Halo: Combat Evolved")
	svc := newTestService(src)
	svc.intn = func(int) int { return 0 }

	_, err := svc.RandomQuoteAnyGame(context.Background())
	if err == nil || err.Error() != "No quotes found in halo-ce.json" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRandomQuoteRecordsServedMetric(t *testing.T) {
	rec := metrics.NewRecorder()
	svc := NewService(domain.DefaultRegistry(), testutil.HaloSource(), rec)

	if _, err := svc.RandomQuote(context.Background(), "halo-odst"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if rec.QuotesServed("halo-odst") != 1 {
		t.Fatalf("expected served quote to be recorded")
	}
}

func TestStatsTotalsAndOrder(t *testing.T) {
	svc := newTestService(testutil.HaloSource())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	reg := svc.Registry()
	if stats.TotalGames != reg.Len() {
		t.Fatalf("expected %d games, got %d", reg.Len(), stats.TotalGames)
	}
	keys := stats.QuotesPerGame.Keys()
	sum := 0
	for i, id := range reg.IDs() {
		if keys[i] != id {
			t.Fatalf("expected key %d to be %s, got %s", i, id, keys[i])
		}
		gc, _ := stats.QuotesPerGame.Get(id)
		sum += gc.Count
	}
	if stats.TotalQuotes != sum || sum != 3*reg.Len() {
		t.Fatalf("expected total %d, got %d", sum, stats.TotalQuotes)
	}
}

func TestStatsSingleFailureDegradesGracefully(t *testing.T) {
	src := testutil.HaloSource().
		WithError("halo-wars.json", origin.NewStatusError("halo-wars.json", 500, "500 Internal Server Error"))
	svc := newTestService(src)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	gc, ok := stats.QuotesPerGame.Get("halo-wars")
	if !ok {
		t.Fatalf("expected entry for failed game")
	}
	if gc.Count != 0 || gc.GameName != "halo-wars" || gc.Error != "Failed to fetch quotes: 500 Internal Server Error" {
		t.Fatalf("unexpected failed entry %+v", gc)
	}
	if stats.TotalQuotes != 3*(svc.Registry().Len()-1) {
		t.Fatalf("unexpected total %d", stats.TotalQuotes)
	}
	for _, e := range svc.Registry().Entries() {
		if src.Calls(e.Filename) != 1 {
			t.Fatalf("expected exactly one fetch of %s, got %d", e.Filename, src.Calls(e.Filename))
		}
	}
}

func TestStatsFallsBackToGameIDWhenNameMissing(t *testing.T) {
	src := testutil.HaloSource().WithFile("halo-5.json", "", "a")
	stats, err := newTestService(src).Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if gc, _ := stats.QuotesPerGame.Get("halo-5"); gc.GameName != "halo-5" || gc.Count != 1 || gc.Error != "" {
		t.Fatalf("unexpected entry %+v", gc)
	}
}

func TestStatsFetchesConcurrently(t *testing.T) {
	reg := domain.DefaultRegistry()
	started := make(chan struct{}, reg.Len())
	release := make(chan struct{})
	var inFlight, maxInFlight atomic.Int32

	src := origin.SourceFunc(func(ctx context.Context, filename string) (domain.File, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		return domain.NewFile("Game", "q"), nil
	})
	svc := NewService(reg, src, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Stats(context.Background())
		done <- err
	}()

	timeout := time.After(2 * time.Second)
	for i := 0; i < reg.Len(); i++ {
		select {
		case <-started:
		case <-timeout:
			close(release)
			t.Fatalf("only %d of %d fetches started before any finished", i, reg.Len())
		}
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := maxInFlight.Load(); int(got) != reg.Len() {
		t.Fatalf("expected %d concurrent fetches, got %d", reg.Len(), got)
	}
}

func TestStatsCanceledContextIsInternalError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(testutil.HaloSource()).Stats(ctx)
	if domain.KindOf(err) != domain.KindInternal || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected internal canceled error, got %v", err)
	}
}
