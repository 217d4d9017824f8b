// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/feed"
	"github.com/katalvlaran/algoviz/metrics"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Config tunes a Server. Zero values select defaults.
type Config struct {
	Addr      string
	FrameRate float64
	Speed     float64
	StepDelay time.Duration

	// Sleep replaces the pacer's timer; tests pass anim.Instant.
	Sleep anim.SleepFunc
}

// Server owns the engines, the frame hub and the HTTP surface.
type Server struct {
	cfg      Config
	log      *zap.Logger
	hub      *feed.Hub
	metrics  *metrics.Metrics
	engines  *Engines
	dispatch *Dispatcher
	ready    chan net.Addr
}

// New wires a Server. log may be nil.
func New(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	frameRate := cfg.FrameRate
	if frameRate == 0 {
		frameRate = feed.FrameRate
	}
	m := metrics.New()
	d := NewDispatcher(nil, m, log.Named("dispatch"))
	hub := feed.NewHub(
		feed.WithFrameRate(frameRate),
		feed.WithLogger(log.Named("feed")),
		feed.WithObserver(m),
		feed.WithHandler(d),
	)
	d.eng = NewEngines(EngineConfig{
		Speed:     cfg.Speed,
		StepDelay: cfg.StepDelay,
		Sleep:     cfg.Sleep,
	}, m.Sink(hub), log.Named("engine"))

	return &Server{
		cfg:      cfg,
		log:      log,
		hub:      hub,
		metrics:  m,
		engines:  d.eng,
		dispatch: d,
		ready:    make(chan net.Addr, 1),
	}
}

// Engines exposes the engines for in-process callers.
func (s *Server) Engines() *Engines { return s.engines }

// Dispatcher exposes the command router.
func (s *Server) Dispatcher() *Dispatcher { return s.dispatch }

// Hub exposes the frame hub.
func (s *Server) Hub() *feed.Hub { return s.hub }

// Ready yields the bound address once Run is listening.
func (s *Server) Ready() <-chan net.Addr { return s.ready }

// Handler returns the HTTP routes: /ws, /metrics and /healthz. ctx bounds
// the operations websocket clients start.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.hub.ServeWS(ctx, w, r)
	})
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Run serves until ctx is done, then stops running animations, drains the
// HTTP server and closes the hub.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	s.ready <- ln.Addr()
	s.log.Info("serving", zap.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           s.Handler(gctx),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.dispatch.StopAll()
		s.engines.Pacer.Resume()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		s.dispatch.Wait()
		s.hub.Close()
		s.log.Info("stopped")
		return errors.Wrap(err, "http shutdown")
	})
	return g.Wait()
}
