// ============================================================================
// mCALC - Arithmetic Expression Calculator
// ============================================================================
//
// Package:     server
// Description: HTTP and WebSocket service around the expression engine
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/msto63/mCALC/foundation/calc"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	mclog "github.com/msto63/mCALC/foundation/core/log"
	"github.com/msto63/mCALC/internal/history/store"
	"github.com/msto63/mCALC/pkg/core/cache"
	"github.com/msto63/mCALC/pkg/core/health"
	"github.com/msto63/mCALC/pkg/core/logging"
	"github.com/msto63/mCALC/pkg/core/version"
)

// Server is the mCALC HTTP service
type Server struct {
	httpServer *http.Server
	router     chi.Router
	engine     *calc.Engine
	history    store.Store
	cache      *cache.Cache
	health     *health.Registry
	metrics    *Metrics
	logger     *logging.Logger
	config     Config

	mu       sync.Mutex
	listener net.Listener
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Version      string
	CacheSize    int // Zero disables the result cache
	HistoryLimit int // Default page size of GET /api/v1/history
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8090,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Version:      version.Server,
		CacheSize:    256,
		HistoryLimit: 50,
	}
}

// Deps are the collaborators of the server
type Deps struct {
	Engine  *calc.Engine
	History store.Store // nil disables the history endpoints
	Logger  *mclog.Logger
}

// New creates a new server
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = mclog.GetDefault()
	}
	if deps.Engine == nil {
		deps.Engine = calc.New(calc.Options{Logger: deps.Logger})
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}
	if cfg.Version == "" {
		cfg.Version = version.Server
	}

	results, err := cache.New(cache.Config{MaxItems: cfg.CacheSize})
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	s := &Server{
		engine:  deps.Engine,
		history: deps.History,
		cache:   results,
		metrics: NewMetrics(),
		logger:  logging.Wrap(deps.Logger.WithName("mcalc-server")),
		config:  cfg,
	}

	s.health = health.NewRegistry("mcalc", cfg.Version)
	s.health.Register(health.ProbeCheck("engine", health.StatusUnhealthy, func(ctx context.Context) error {
		res, err := s.engine.Evaluate(ctx, "1 + 2 * 3")
		if err != nil {
			return err
		}
		if res.Value != 7 {
			return fmt.Errorf("self-test returned %s, expected 7", res.ValueText())
		}
		return nil
	}))
	s.health.RegisterFunc("cache", s.cacheCheck)
	if s.history != nil {
		s.health.Register(health.ProbeCheck("history", health.StatusDegraded, s.history.Ping))
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         s.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// routes builds the router
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(corsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/eval", s.handleEval)
		r.Method(http.MethodGet, "/eval/ws", NewWebSocketHandler(s))
		r.Post("/tokens", s.handleTokens)
		r.Get("/history", s.handleHistoryList)
		r.Delete("/history", s.handleHistoryClear)
		r.Get("/history/{id}", s.handleHistoryGet)
	})

	return r
}

// loggingMiddleware adds request logging
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// cacheCheck reports the result cache statistics. A disabled cache is
// still healthy.
func (s *Server) cacheCheck(ctx context.Context) health.CheckResult {
	hits, misses, rate := s.cache.Stats()
	message := "ok"
	if !s.cache.Enabled() {
		message = "disabled"
	}
	return health.CheckResult{
		Name:    "cache",
		Status:  health.StatusHealthy,
		Message: message,
		Details: map[string]interface{}{
			"enabled":  s.cache.Enabled(),
			"size":     s.cache.Size(),
			"hits":     hits,
			"misses":   misses,
			"hit_rate": rate,
		},
	}
}

// corsMiddleware adds CORS headers and answers preflight requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting mCALC server",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	ln, err := s.listen()
	if err != nil {
		return err
	}
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StartAsync binds the listen address and serves in the background. Bind
// failures are returned to the caller.
func (s *Server) StartAsync() error {
	s.logger.Info("Starting mCALC server (async)",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	ln, err := s.listen()
	if err != nil {
		return err
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, mcerror.Wrap(err, "failed to bind listen address").
			WithCode(mcerror.CodeServiceUnavailable).
			WithOperation("server.Start").
			WithDetail("address", s.httpServer.Addr)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return ln, nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping mCALC server")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address. Once the server listens it is the
// bound address, which resolves port 0.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
