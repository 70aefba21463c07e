package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/sawpanic/cea/internal/application/advisor"
	"github.com/sawpanic/cea/internal/companies"
	"github.com/sawpanic/cea/internal/config"
	"github.com/sawpanic/cea/internal/interfaces/http/handlers"
	"github.com/sawpanic/cea/internal/net/ratelimit"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Deps is the state the server composes. Every field is owned by the caller and shared
// by reference; nothing is global.
type Deps struct {
	Advisor   *advisor.Service
	Companies *companies.Registry

	// ForwardingState reports alert forwarding status for /health; nil means disabled
	ForwardingState func() string
}

// Server represents the CEA HTTP server
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *handlers.Handlers
	metrics  *MetricsRegistry
	limiter  *ratelimit.Limiter
	config   *config.Config
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, deps Deps, version string) *Server {
	router := mux.NewRouter()
	metrics := NewMetricsRegistry()

	s := &Server{
		router:  router,
		metrics: metrics,
		config:  cfg,
		handlers: handlers.NewHandlers(handlers.Options{
			Advisor:         deps.Advisor,
			Companies:       deps.Companies,
			StaticDir:       cfg.StaticDir,
			Metrics:         metrics,
			Version:         version,
			ForwardingState: deps.ForwardingState,
			CheckOrigin:     localOrigin,
		}),
	}
	if cfg.RateLimit.RPS > 0 {
		s.limiter = ratelimit.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Middleware for all routes
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.corsMiddleware)

	// Page routes (static documents)
	s.router.HandleFunc("/", s.handlers.Page(handlers.PageHome)).Methods("GET")
	s.router.HandleFunc("/home", s.handlers.Page(handlers.PageHome)).Methods("GET")
	s.router.HandleFunc("/ai", s.handlers.Page(handlers.PageAI)).Methods("GET")
	s.router.HandleFunc("/contact", s.handlers.Page(handlers.PageContact)).Methods("GET")
	s.router.HandleFunc("/login", s.handlers.Page(handlers.PageLogin)).Methods("GET")
	s.router.HandleFunc("/companies", s.handlers.Page(handlers.PageCompanies)).Methods("GET")

	// Operational endpoints
	s.router.HandleFunc("/health", s.handlers.Health).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	// Long-lived stream, registered ahead of the /api subrouter to skip its timeout
	s.router.HandleFunc("/api/alerts/stream", s.handlers.AlertStream).Methods("GET")

	// API routes (JSON only)
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.Use(s.timeoutMiddleware)

	api.HandleFunc("/cea", s.handlers.CEA).Methods("POST", "OPTIONS")
	api.HandleFunc("/sectors", s.handlers.Sectors).Methods("GET")
	api.HandleFunc("/alerts", s.handlers.Alerts).Methods("GET")
	api.HandleFunc("/companies", s.handlers.ListCompanies).Methods("GET")
	api.HandleFunc("/companies", s.handlers.CreateCompany).Methods("POST", "OPTIONS")
	api.HandleFunc("/companies/{id:[0-9]+}", s.handlers.GetCompany).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(s.handlers.NotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handlers.MethodNotAllowed)
}

// RequestID returns the id assigned to the request, or "unknown"
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return "unknown"
}

// requestIDMiddleware adds unique request ID to each request
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs all requests with structured format and feeds metrics
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Capture response status
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		route := routeTemplate(r)
		s.metrics.ObserveRequest(route, r.Method, wrapper.statusCode, duration)

		log.Info().
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", duration).
			Str("remote", r.RemoteAddr).
			Msg("REQ")
	})
}

// routeTemplate keeps metric labels bounded by using the matched route pattern
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

// rateLimitMiddleware throttles API calls per client IP
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		client := clientIP(r)
		if !s.limiter.Allow(client) {
			s.metrics.RecordRateLimited()
			retry := s.limiter.RetryAfter(client)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":"Too many requests.","code":"rate_limited"}`+"\n")

			log.Warn().
				Str("request_id", RequestID(r.Context())).
				Str("client", client).
				Dur("retry_after", retry).
				Msg("Rate limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// timeoutMiddleware enforces request timeouts
func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.Server.RequestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// corsMiddleware adds CORS headers for local development
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins
		if origin := r.Header.Get("Origin"); localOrigin(r) && origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// localOrigin accepts requests without an Origin header or from localhost
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics exposes the server's metrics registry
func (s *Server) Metrics() *MetricsRegistry {
	return s.metrics
}

// Start binds the listener and serves until Shutdown. It returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("port %d is busy or unavailable: %w", s.config.Server.Port, err)
	}

	log.Info().
		Str("addr", s.server.Addr).
		Str("static_dir", s.config.StaticDir).
		Msg("Starting HTTP server")

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server...")
	return s.server.Shutdown(ctx)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	return s.server.Addr
}

// responseWrapper captures HTTP status codes for logging
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the wrapper
func (rw *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Flush forwards to the wrapped writer when it supports flushing
func (rw *responseWrapper) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
