package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"support-router/config"
	_ "support-router/docs" // Swagger docs
	"support-router/internal/app"
	"support-router/internal/chat/usecase"
	"support-router/internal/httpserver"
	"support-router/internal/metrics"
	"support-router/pkg/log"
)

// @title       Support Router API
// @description Routes customer-support queries to templates, retrieval-augmented generation or escalation by classified intent.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Support Router...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Routing: threshold=%.2f top_k=%d pin_escalation=%t escalation=%s",
		cfg.Routing.Threshold, cfg.Routing.TopK, cfg.Routing.PinEscalation, cfg.Escalation.Mode)

	// 3. Routing stack. Any error here is a configuration error.
	stack, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to build routing stack: %v", err)
	}
	defer stack.Close()

	var observer usecase.Observer
	if cfg.Metrics.Enabled {
		observer = metrics.New(prometheus.DefaultRegisterer, stack.Costs)
	}
	chatUC, err := stack.ChatUseCase(observer)
	if err != nil {
		logger.Fatalf(ctx, "Failed to build chat usecase: %v", err)
	}

	readyChecks := map[string]httpserver.ReadyCheck{
		"knowledge_base": stack.Store.Ping,
	}
	if stack.Redis != nil {
		readyChecks["cache"] = stack.Redis.Ping
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatUseCase: chatUC,
		RateLimit:   cfg.RateLimit,
		Metrics:     cfg.Metrics,
		ReadyChecks: readyChecks,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize HTTP server: %v", err)
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
