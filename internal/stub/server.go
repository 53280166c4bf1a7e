// Package stub implements a development backend for the analyst chat. It
// answers POST /analyst_chat with a canned answer and a random mix of long
// generated text and sample chart payloads.
package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/time/rate"
)

// Paths served by the stub.
const (
	ChatPath    = "/analyst_chat"
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// Config contains dependencies for creating a stub server.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string
	// Delay simulates backend thinking time before each reply.
	Delay time.Duration
	// ChartsDir holds debug_chart*.json files. Empty uses built-in samples.
	ChartsDir string
	// TextRepeat is how many times a text variant sentence repeats.
	TextRepeat int
	// RateLimit is requests per second across all clients. Zero disables it.
	RateLimit float64
	// Seed makes variant selection deterministic. Zero seeds from the clock.
	Seed int64

	Logger zerolog.Logger
}

// Server is the stub HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     zerolog.Logger
	metrics    *metrics
	delay      time.Duration

	mu     sync.Mutex
	rng    *rand.Rand
	texts  []string
	charts []json.RawMessage

	listener net.Listener
}

// New creates a stub server. It does not listen until Start.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger.With().Str("component", "stub").Logger()

	charts, err := LoadCharts(cfg.ChartsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart variants: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		logger:  logger,
		metrics: newMetrics(),
		delay:   cfg.Delay,
		//nolint:gosec // G404: variant choice is not security sensitive.
		rng:    rand.New(rand.NewSource(seed)),
		texts:  textVariants(cfg.TextRepeat),
		charts: charts,
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	mux := http.NewServeMux()
	mux.Handle(ChatPath, rateLimitMiddleware(limiter, s.metrics, http.HandlerFunc(s.handleChat)))
	mux.HandleFunc(HealthPath, s.handleHealth)
	mux.Handle(MetricsPath, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	s.handler = auditMiddleware(logger, s.metrics, corsMiddleware(mux))

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Debug().
		Int("charts", len(charts)).
		Dur("delay", cfg.Delay).
		Float64("rate_limit", cfg.RateLimit).
		Msg("Stub server configured")

	return s, nil
}

// Handler returns the full handler chain, for embedding in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves in a background
// goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Msg("Starting stub backend")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Stub backend server error")
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Stopping stub backend")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// ChatURL returns the chat endpoint URL.
func (s *Server) ChatURL() string {
	return "http://" + s.Addr() + ChatPath
}
