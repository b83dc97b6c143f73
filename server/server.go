package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
	"github.com/kbukum/errguard/logger"
	"github.com/kbukum/errguard/server/middleware"
)

// Server hosts Gin routes and plain net/http handlers on one port, with
// HTTP/2 cleartext support. Server-level middleware wraps both.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	middleware []middleware.Middleware
	config     Config
	wrapper    *handler.Wrapper
	log        *logger.Logger
}

// New creates a server whose Gin engine answers unknown routes and
// methods through w, and recovers panics in Gin handlers through w.
func New(cfg Config, w *handler.Wrapper, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(middleware.GinRecovery(w))
	engine.NoRoute(w.Gin(func(*gin.Context) error { return apperrors.NotFound("") }))
	engine.NoMethod(w.Gin(func(*gin.Context) error { return apperrors.MethodNotAllowed("") }))

	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine:  engine,
		mux:     mux,
		config:  cfg,
		wrapper: w,
		log:     log.WithComponent("server"),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// GinEngine returns the Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Wrapper returns the dispatcher the server renders failures with.
func (s *Server) Wrapper() *handler.Wrapper {
	return s.wrapper
}

// Handle mounts an http.Handler on the root mux. Patterns use the
// net/http syntax, e.g. "GET /v/users/{id}".
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// HandleValue mounts a value-returning handler wrapped by the server's
// dispatcher.
func (s *Server) HandleValue(pattern string, h handler.ValueHandler) {
	s.Handle(pattern, s.wrapper.Handler(h))
}

// Use appends server-level middleware. The first added is the outermost.
// Call before Handler or Start.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.middleware = append(s.middleware, mws...)
}

// ApplyMiddleware installs the standard stack: recovery, request ID,
// tracing, CORS, body size limit, request logging and, when configured,
// rate limiting. ctx bounds the rate limiter's cleanup goroutine.
func (s *Server) ApplyMiddleware(ctx context.Context) {
	s.Use(
		middleware.Recovery(s.wrapper),
		middleware.RequestID(),
		middleware.Tracing(nil),
		middleware.RequestLogger(s.log),
		middleware.CORS(&s.config.CORS),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	)
	if s.config.RateLimit.Requests > 0 {
		s.Use(middleware.RateLimit(ctx, s.wrapper, s.config.RateLimit))
	}
}

// Handler returns the full request pipeline: middleware around the mux,
// behind h2c.
func (s *Server) Handler() http.Handler {
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(s.config.IdleTimeout) * time.Second,
	}
	return h2c.NewHandler(middleware.Chain(s.middleware...)(s.mux), h2s)
}

// Start binds the port and serves in a goroutine. It returns once the
// listener is bound. Request contexts inherit ctx's values but not its
// cancellation, so in-flight requests survive until Stop drains them.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer.Handler = s.Handler()
	base := context.WithoutCancel(ctx)
	s.httpServer.BaseContext = func(net.Listener) context.Context { return base }

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.httpServer.Addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return nil
}

// Stop shuts the server down gracefully, waiting at most 5 seconds.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.ErrorFields("shutdown", err))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down")
	return nil
}

// Addr returns the listen address; after Start it is the bound address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
