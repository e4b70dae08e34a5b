package localhost

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
	"github.com/kbukum/gollama/plugins/localhost/middleware"
)

// Host is the only interface the content server listens on.
const Host = "127.0.0.1"

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server is the Gin-backed HTTP server that serves the frontend bundle.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	assets     fs.FS
	port       int
	serving    atomic.Bool
	log        *logger.Logger
}

// NewServer creates a server for the given port and asset tree. Nothing is
// bound until Start.
func NewServer(port int, assets fs.FS, log *logger.Logger, metrics *observability.Metrics) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent(Name)

	s := &Server{
		engine: gin.New(),
		assets: assets,
		port:   port,
		log:    log,
	}
	s.engine.GET("/*filepath", s.serveAsset)
	s.engine.HEAD("/*filepath", s.serveAsset)

	stack := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log, metrics),
	)
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(Host, strconv.Itoa(port)),
		Handler:      h2c.NewHandler(stack(s.engine), h2s),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Handler returns the full handler stack, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Serving reports whether the listener is bound and serving.
func (s *Server) Serving() bool { return s.serving.Load() }

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("localhost server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.serving.Store(true)

	go func() {
		defer s.serving.Store(false)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("Content server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return fmt.Errorf("localhost server shutdown: %w", err)
	}
	s.serving.Store(false)
	s.log.Info("Content server shut down")
	return nil
}
