// Package main is the entry point for the widget server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/internal/assistant"
	"github.com/vivekraina7/Windows-Error/internal/chat"
	"github.com/vivekraina7/Windows-Error/internal/config"
	"github.com/vivekraina7/Windows-Error/internal/handler"
	"github.com/vivekraina7/Windows-Error/internal/middleware"
	"github.com/vivekraina7/Windows-Error/internal/service"
	"github.com/vivekraina7/Windows-Error/internal/storage"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
	"github.com/vivekraina7/Windows-Error/pkg/tracing"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting widget server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "widget-server", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open page storage
	store, err := storage.Open(cfg.StoragePath, log)
	if err != nil {
		log.Error("failed to open storage", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	// Initialize the assistant backend. Missing keys are not fatal: the
	// assistant answers with its unavailable reply and escalates.
	var provider assistant.Provider
	if kind, apiKey, ok := assistant.PickProvider(cfg.DefaultProvider, cfg.AnthropicAPIKey, cfg.OpenAIAPIKey); ok {
		provider, err = assistant.NewProvider(kind, apiKey)
		if err != nil {
			log.Warn("failed to create LLM provider, assistant disabled",
				zap.String("provider", string(kind)), zap.Error(err))
		}
	} else {
		log.Warn("no LLM API key configured, assistant disabled")
	}
	asst := assistant.New(provider, cfg.AssistantModel, log)

	// Initialize services
	registry := service.NewRegistry(log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(store, asst)
	chatHandler := handler.NewChatHandler(registry, asst, log)
	chatClient := chat.NewClient(cfg.ChatEndpoint, cfg.RequestTimeout)
	widgetHandler := handler.NewWidgetHandler(chatClient, cfg.EscalationDelay, log)
	pageHandler := handler.NewPageHandler(cfg.AlertAutoDismiss, cfg.ScanPhaseEvery, log)
	storageHandler := handler.NewStorageHandler(store)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Chat endpoint the widget posts to
	r.Post("/chat", chatHandler.Chat)

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/conversations", chatHandler.CreateConversation)

		// Widget sessions
		r.Route("/widget", func(r chi.Router) {
			r.Post("/", widgetHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(middleware.ConversationRateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

				r.Get("/", widgetHandler.Snapshot)
				r.With(middleware.RequireScope("widget:admin")).Delete("/", widgetHandler.Close)
				r.Post("/messages", widgetHandler.SubmitMessage)
				r.Get("/export", widgetHandler.Export)
				r.Post("/escalate", widgetHandler.Escalate)
				r.Delete("/history", widgetHandler.ClearHistory)
			})
		})

		// Page state
		r.Route("/page", func(r chi.Router) {
			r.Get("/", pageHandler.Snapshot)
			r.Post("/alerts", pageHandler.ShowAlert)
			r.Delete("/alerts/{severity}", pageHandler.DismissAlert)
			r.Post("/scan", pageHandler.StartScan)
			r.Post("/progress", pageHandler.AnimateProgress)
			r.Post("/request-errors", pageHandler.ReportRequestError)
			r.Post("/clipboard", pageHandler.CopyToClipboard)
			r.Post("/forms", pageHandler.ValidateForm)
		})

		// Page storage
		r.Route("/storage/{key}", func(r chi.Router) {
			r.Get("/", storageHandler.Get)
			r.Put("/", storageHandler.Put)
			r.With(middleware.RequireScope("widget:admin")).Delete("/", storageHandler.Delete)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
