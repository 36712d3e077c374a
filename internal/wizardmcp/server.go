// Package wizardmcp exposes feature wizards as MCP tools so an agent can
// walk a user through a form one step at a time.
package wizardmcp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
	"github.com/mark3labs/augur/internal/logger"
	"github.com/mark3labs/augur/internal/submission"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log = logger.Default.Named("mcp")

// Server manages an MCP HTTP server and the wizard sessions it hosts.
type Server struct {
	bundle *i18n.Bundle
	locale string
	store  *submission.Store
	extra  []func(form.Payload)

	mcpServer *server.MCPServer
	stdServer *http.Server
	port      int
	baseCtx   context.Context
	mu        sync.Mutex

	sessions map[string]*session
	registry *prometheus.Registry
	metrics  *metrics
}

// session is one wizard instance. form.Wizard is single-threaded, so every
// tool call holds the session lock for its whole duration.
type session struct {
	mu        sync.Mutex
	id        string
	wizard    *form.Wizard
	localizer *i18n.Localizer
}

// Option configures a Server.
type Option func(*Server)

// WithStore publishes every submitted payload through store.
func WithStore(store *submission.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithOnComplete adds a callback run for every submitted payload.
func WithOnComplete(fn func(form.Payload)) Option {
	return func(s *Server) { s.extra = append(s.extra, fn) }
}

// WithLocale sets the locale used when start_wizard omits one.
func WithLocale(locale string) Option {
	return func(s *Server) { s.locale = locale }
}

// New creates a server with its tools registered. Nothing listens until
// Start is called.
func New(bundle *i18n.Bundle, opts ...Option) *Server {
	s := &Server{
		bundle:   bundle,
		locale:   i18n.BaseLocale,
		baseCtx:  context.Background(),
		sessions: make(map[string]*session),
		registry: prometheus.NewRegistry(),
	}
	s.metrics = newMetrics(s.registry)
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		"augur-wizards",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Start listens on addr ("127.0.0.1:0" picks a free port) and serves MCP
// over streamable HTTP at /mcp and Prometheus metrics at /metrics. It
// returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port
	s.baseCtx = ctx

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("MCP server error: %v", err)
		}
	}()

	log.Info("MCP server listening on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down. Sessions are kept.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		log.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	log.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}

func (s *Server) openSession(def *form.Definition, locale string) (*session, error) {
	if locale == "" {
		locale = s.locale
	}
	loc := s.bundle.Localizer(locale)

	opts := []form.Option{form.WithTranslator(loc)}
	s.mu.Lock()
	if s.store != nil {
		opts = append(opts, form.OnComplete(s.store.Sink(s.baseCtx, nil)))
	}
	for _, fn := range s.extra {
		opts = append(opts, form.OnComplete(fn))
	}
	s.mu.Unlock()

	w, err := form.New(def, opts...)
	if err != nil {
		return nil, err
	}

	sess := &session{id: uuid.NewString(), wizard: w, localizer: loc}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.metrics.active.Set(float64(len(s.sessions)))
	s.mu.Unlock()
	s.metrics.started.WithLabelValues(def.ID).Inc()

	log.Debug("Session %s opened for %s (%s)", sess.id, def.ID, loc.Locale())
	return sess, nil
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) closeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	s.metrics.active.Set(float64(len(s.sessions)))
}
