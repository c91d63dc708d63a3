package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/config"
	"github.com/bar-comandas/web/internal/handlers"
	"github.com/bar-comandas/web/internal/probe"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
	"github.com/bar-comandas/web/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting bar web client",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"api_base_url", cfg.API.BaseURL,
		"log_level", cfg.LogLevel,
	)

	api, err := backend.NewClient(cfg.API.BaseURL, cfg.APITimeout(), log)
	if err != nil {
		log.Error("failed to create api client", "error", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(cfg.Session, log)
	if err != nil {
		log.Error("failed to create session manager", "error", err)
		os.Exit(1)
	}

	renderer, err := views.New()
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	backendProbe, err := probe.New(api, cfg.Probe.Schedule, cfg.APITimeout(), log)
	if err != nil {
		log.Error("failed to schedule backend probe", "error", err)
		os.Exit(1)
	}
	backendProbe.Start()

	router := handlers.NewRouter(handlers.RouterConfig{
		API:            api,
		APIBaseURL:     api.BaseURL(),
		Views:          renderer,
		Sessions:       sessions,
		Backend:        backendProbe,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RefreshSeconds: cfg.Customer.RefreshSeconds,
		Logger:         log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	backendProbe.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
