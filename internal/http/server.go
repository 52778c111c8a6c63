// Package http serves the bill JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"billbook/internal/backend"
	"billbook/internal/core"
	"billbook/internal/log"
	"billbook/internal/middleware/ratelimit"
	"billbook/internal/middleware/security"
	"billbook/internal/middleware/trace"
)

// maxBodyBytes caps request bodies; bills and search filters are tiny.
const maxBodyBytes = 1 << 20

// Options tunes the server around the backend.
type Options struct {
	RateLimitPerMinute int
	// TrustedProxies are extra CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
	Logger         *log.Logger
}

type Server struct {
	http.Server
	backend *backend.BackendResult
	logger  *log.Logger

	traceMiddleware  *trace.Middleware
	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector

	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, b *backend.BackendResult, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", log.FieldError, err)
		}
	}

	s := &Server{
		backend:          b,
		logger:           logger,
		traceMiddleware:  trace.NewMiddleware(detector.ExtractClientIP),
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		securityDetector: detector,
		startedAt:        time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/bills/search", s.handleSearch)
	mux.HandleFunc("/bills", s.handleBills)
	mux.HandleFunc("/bills/{id}", s.handleBill)
	mux.HandleFunc("/categories", s.handleCategories)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/", handleNotFound)

	// Outermost first: tracing sees the final status of every request,
	// including rate-limited ones.
	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(detector.ExtractClientIP, s.handleRateLimited)(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = log.RequestIDMiddleware(trace.RequestID)(handler)
	handler = log.Middleware(logger)(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Shutdown stops the limiter and drains the HTTP server. Safe to call twice.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldComponent, log.ComponentRateLimit,
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	writeJSON(w, http.StatusTooManyRequests, core.ErrorEnvelope{
		Ret: core.RetRateLimited,
		Msg: "rate limit exceeded, try again later",
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, core.ErrorEnvelope{Ret: core.RetNotFound, Msg: "no route for " + r.URL.Path})
}
