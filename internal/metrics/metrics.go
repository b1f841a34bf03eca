package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	fetches          int
	errors           int
	lastFetchLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about origin fetches and
// served quotes, forwarding to OpenTelemetry instruments when configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*sourceStats
	served map[string]int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*sourceStats),
		served: make(map[string]int),
		otel:   otel,
	}
}

// RecordOriginFetch counts a quote file fetch against the named source and stores its latency.
func (r *Recorder) RecordOriginFetch(source, filename string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	stats.fetches++
	stats.lastFetchLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOriginFetch(source, filename, duration, err)
	}
}

// RecordQuoteServed counts a quote returned to a caller for the given game.
func (r *Recorder) RecordQuoteServed(gameID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.served[gameID]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuoteServed(gameID)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, route, status, duration)
}

// Snapshot is a copy of the current stats for one source.
type Snapshot struct {
	Fetches          int
	Errors           int
	LastFetchLatency time.Duration
}

// Snapshot returns the current stats for the source.
func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Fetches:          stats.fetches,
		Errors:           stats.errors,
		LastFetchLatency: stats.lastFetchLatency,
	}
}

// QuotesServed returns how many quotes were served for the game.
func (r *Recorder) QuotesServed(gameID string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.served[gameID]
}
