// Package server exposes the sort analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/config"
	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
)

// ErrShuttingDown is reported by the readiness check while the server drains.
var ErrShuttingDown = errors.New("server is shutting down")

// Options wires the server to its collaborators.
type Options struct {
	Analyzer *analysis.Analyzer
	Config   config.ServerConfig

	// MaxInputLength caps the number of values per request. Zero disables
	// the cap.
	MaxInputLength int

	Logger         *slog.Logger
	Tracer         trace.Tracer
	RED            *observability.REDMetrics
	MetricsHandler http.Handler
}

// Server is the HTTP front end of the analyzer.
type Server struct {
	analyzer       *analysis.Analyzer
	cfg            config.ServerConfig
	maxBodyBytes   int64
	maxInputLength int
	logger         *slog.Logger
	tracer         trace.Tracer
	red            *observability.REDMetrics
	metrics        http.Handler
	limiter        *limiter
	draining       atomic.Bool
	engine         *gin.Engine
}

// New validates the options and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Analyzer == nil {
		opts.Analyzer = analysis.New()
	}

	maxBody, err := opts.Config.MaxBodyBytes()
	if err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	srv := &Server{
		analyzer:       opts.Analyzer,
		cfg:            opts.Config,
		maxBodyBytes:   maxBody,
		maxInputLength: opts.MaxInputLength,
		logger:         opts.Logger,
		tracer:         opts.Tracer,
		red:            opts.RED,
		metrics:        opts.MetricsHandler,
		limiter:        newLimiter(opts.Config.RateLimit, opts.Config.RateBurst),
	}

	if srv.logger == nil {
		srv.logger = slog.New(slog.DiscardHandler)
	}

	if srv.tracer == nil {
		srv.tracer = noop.NewTracerProvider().Tracer("sortbench/server")
	}

	srv.engine = srv.routes()

	return srv, nil
}

// Handler returns the root handler with tracing and RED metrics applied.
func (s *Server) Handler() http.Handler {
	return observability.HTTPMiddleware(s.tracer, s.red, s.engine)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	s.logger.InfoContext(ctx, "http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.draining.Store(true)
	s.logger.InfoContext(ctx, "http server shutting down")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	<-errCh

	return nil
}

func (s *Server) ready(_ context.Context) error {
	if s.draining.Load() {
		return ErrShuttingDown
	}

	return nil
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), s.accessLog(), cors(s.cfg.CORSOrigins))

	engine.GET("/healthz", gin.WrapH(observability.HealthHandler()))
	engine.GET("/readyz", gin.WrapH(observability.ReadyHandler(s.ready)))

	if s.metrics != nil {
		engine.GET("/metrics", gin.WrapH(s.metrics))
	}

	api := engine.Group("/api/sort", s.limiter.middleware(), bodyLimit(s.maxBodyBytes))
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/best", s.handleBest)
	}

	return engine
}

const accessLogMsg = "http request"

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.InfoContext(c.Request.Context(), accessLogMsg,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
