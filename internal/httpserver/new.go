package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"support-router/config"
	"support-router/internal/chat"
	"support-router/pkg/log"
)

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Chat domain
	chatUC chat.UseCase

	rateLimit   config.RateLimitConfig
	metrics     config.MetricsConfig
	readyChecks map[string]ReadyCheck
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ChatUseCase chat.UseCase

	RateLimit   config.RateLimitConfig
	Metrics     config.MetricsConfig
	ReadyChecks map[string]ReadyCheck
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		chatUC:      cfg.ChatUseCase,
		rateLimit:   cfg.RateLimit,
		metrics:     cfg.Metrics,
		readyChecks: cfg.ReadyChecks,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat usecase is required")
	}
	return nil
}
