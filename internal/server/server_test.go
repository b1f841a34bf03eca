package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/teamrespawntv/halo-quotes/internal/app/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/config"
	domain "github.com/teamrespawntv/halo-quotes/internal/domain/quotes"
	"github.com/teamrespawntv/halo-quotes/internal/testutil"
)

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.listenCalls++
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.addr
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.handler
}

type blockingHTTPServer struct {
	addr          string
	handler       http.Handler
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error {
	return nil
}

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string {
	return s.addr
}

func (s *blockingHTTPServer) Handler() http.Handler {
	return s.handler
}

func newTestService() *quotes.Service {
	return quotes.NewService(domain.DefaultRegistry(), testutil.HaloSource(), nil)
}

func TestServerServesQuotesFromInjectedSource(t *testing.T) {
	src := testutil.NewStubSource().WithFile("halo-odst.json", "Halo 3: ODST", "Rookie.")
	srv := newServerWithSource(config.Config{}, nil, src)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quote?game=halo-odst", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /quote, got %d", rec.Code)
	}
	var q domain.Quote
	testutil.DecodeJSON(t, rec, &q)
	if q.Quote != "Rookie." || q.GameID != "halo-odst" {
		t.Fatalf("unexpected quote %+v", q)
	}

	snap := srv.metrics.Snapshot("injected")
	if snap.Fetches != 1 || snap.Errors != 0 {
		t.Fatalf("expected one recorded fetch, got %+v", snap)
	}
	if srv.metrics.QuotesServed("halo-odst") != 1 {
		t.Fatalf("expected quote served counter to increment")
	}
}

func TestServerStatsSurvivesOriginFailures(t *testing.T) {
	src := testutil.NewStubSource().WithError("halo-ce.json", errors.New("connection refused"))
	srv := newServerWithSource(config.Config{}, nil, src)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /stats, got %d", rec.Code)
	}
	var stats domain.Stats
	testutil.DecodeJSON(t, rec, &stats)
	if stats.TotalQuotes != 0 || stats.TotalGames != 11 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if snap := srv.metrics.Snapshot("injected"); snap.Errors != 11 {
		t.Fatalf("expected every fetch to count as an error, got %+v", snap)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:    "0",
		Source:  config.SourceLocal,
		Origin:  config.OriginConfig{Dir: t.TempDir()},
		Metrics: config.MetricsConfig{Enabled: false},
	}
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.httpServer.Addr() != ":0" {
		t.Fatalf("unexpected addr %s", srv.httpServer.Addr())
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &stubHTTPServer{}
	metricsSrv := &stubHTTPServer{}
	stopCalls := 0

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv)
	srv.metricsServer = metricsSrv
	srv.metricsStop = func(context.Context) error {
		stopCalls++
		return nil
	}
	srv.gracefulShutdown()

	if httpSrv.shutdownCalls != 1 || metricsSrv.shutdownCalls != 1 || stopCalls != 1 {
		t.Fatalf("expected each component shut down once, got http=%d metrics=%d stop=%d", httpSrv.shutdownCalls, metricsSrv.shutdownCalls, stopCalls)
	}
}

func TestGracefulShutdownContinuesAfterErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	httpSrv := &stubHTTPServer{shutdownErr: errors.New("busy")}
	stopCalls := 0

	srv := newServerWithDeps(config.Config{}, logger, newTestService(), httpSrv)
	srv.metricsStop = func(context.Context) error {
		stopCalls++
		return errors.New("flush failed")
	}
	srv.gracefulShutdown()

	if stopCalls != 1 {
		t.Fatalf("expected metrics stop after http shutdown error")
	}
	for _, want := range []string{"graceful shutdown failed", "metrics shutdown failed", "shutdown complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected log %q in %s", want, buf.String())
		}
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &blockingHTTPServer{
		addr:    ":0",
		handler: http.NewServeMux(),
		unblock: make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, newTestService(), blocking)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.shutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	httpSrv := &stubHTTPServer{addr: ":0", listenErr: errors.New("listen failure")}
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := &stubHTTPServer{addr: ":0", listenErr: http.ErrServerClosed}
	srv := newServerWithDeps(config.Config{}, nil, newTestService(), httpSrv)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.shutdownCalls)
	}
}
