package live

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/filament-ui/filament/pkg/render"
)

// Config configures a live Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// App builds the per-session root content. Called once per
	// session, so component state is session-local.
	App func() any

	// Page wraps the SSR response served at "/". Its Body is ignored;
	// the App output is rendered instead.
	Page render.Page

	// AssetPath is the base path for static assets.
	AssetPath string

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace is the metrics namespace. Defaults to "filament".
	Namespace string

	// ReadTimeout and WriteTimeout bound WebSocket i/o per message.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server hosts live sessions and the SSR page around them.
type Server struct {
	config  Config
	router  chi.Router
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	upgrader websocket.Upgrader

	mu        sync.Mutex
	sessions  map[string]*Session
	sessionID atomic.Uint64

	httpServer *http.Server
}

// NewServer creates a Server around config.App.
func NewServer(config Config) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 60 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		config:   config,
		logger:   config.Logger,
		metrics:  NewMetrics(config.Registry, config.Namespace),
		tracer:   otel.Tracer("filament/live"),
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Handle("/metrics", promhttp.Handler())
	s.router = r

	return s
}

// Router returns the HTTP handler, for embedding or tests.
func (s *Server) Router() http.Handler { return s.router }

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("live server listening", "addr", s.config.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// handleIndex serves the SSR page for a fresh session, streamed in
// sections.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	page := s.config.Page
	page.Body = s.config.App()

	sr := render.NewStreamingRenderer(w, render.Config{AssetPath: s.config.AssetPath})
	if err := sr.RenderPage(page); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

// handleLive upgrades to WebSocket and runs the session until the
// client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	id := fmt.Sprintf("s%d", s.sessionID.Add(1))
	session := newSession(id, conn, s)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	s.metrics.ActiveSessions.Inc()
	s.metrics.SessionsTotal.Inc()
	s.logger.Info("session started", "session_id", id, "remote", r.RemoteAddr)

	session.run(s.config.App)

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
