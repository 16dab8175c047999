package fwmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// ServerConfig holds configuration for a Server
type ServerConfig struct {
	// Host is the host to bind to (default: "")
	Host string

	// Port is the port to listen on (default: $PORT or 8080)
	Port string

	// Adapter names the web framework: echo, gin or fiber (default: $FWMAP_ADAPTER or echo)
	Adapter string

	// LogLevel is the slog level name (default: $FWMAP_LOG_LEVEL or info)
	LogLevel string

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a server configuration from the environment
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            "",
		Port:            envOr("PORT", "8080"),
		Adapter:         envOr("FWMAP_ADAPTER", "echo"),
		LogLevel:        envOr("FWMAP_LOG_LEVEL", "info"),
		ShutdownTimeout: 30 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Addr returns host:port
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// SlogLevel parses LogLevel
func (c *ServerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Server mounts an application context on a web server
type Server struct {
	config  *ServerConfig
	web     WebServerInterface
	context *ApplicationContext
	logger  *slog.Logger
}

// NewServer creates a server. The context must already be refreshed.
func NewServer(config *ServerConfig, web WebServerInterface, appContext *ApplicationContext, logger *slog.Logger) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher, err := appContext.Dispatcher()
	if err != nil {
		return nil, err
	}
	web.Use(requestLogger(logger))
	dispatcher.Mount(web)

	return &Server{config: config, web: web, context: appContext, logger: logger}, nil
}

// Start listens in the background and returns immediately.
// Listen errors other than a closed server are logged.
func (s *Server) Start() {
	addr := s.config.Addr()
	go func() {
		s.logger.Info("starting server", "addr", addr, "adapter", s.web.Name())
		if err := s.web.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", "error", err)
		}
	}()
}

// Stop shuts the web server down within ShutdownTimeout
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := s.web.Stop(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func requestLogger(logger *slog.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) error {
			start := time.Now()
			err := next(ctx)
			attrs := []any{
				"method", ctx.Method(),
				"path", ctx.Path(),
				"duration", time.Since(start),
			}
			if err != nil {
				attrs = append(attrs, "status", AsHTTPError(err).Code)
			} else {
				attrs = append(attrs, "status", ctx.Response().Status())
			}
			logger.Debug("request", attrs...)
			return err
		}
	}
}
