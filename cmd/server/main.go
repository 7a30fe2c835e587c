// Burme Mark - Myanmar AI Assistant Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athuyarain/burme-mark/internal/activity"
	"github.com/athuyarain/burme-mark/internal/api"
	"github.com/athuyarain/burme-mark/internal/backup"
	"github.com/athuyarain/burme-mark/internal/config"
	"github.com/athuyarain/burme-mark/internal/history"
	"github.com/athuyarain/burme-mark/internal/inference"
	"github.com/athuyarain/burme-mark/internal/middleware"
	"github.com/athuyarain/burme-mark/internal/records"
	"github.com/athuyarain/burme-mark/internal/runner"
	"github.com/athuyarain/burme-mark/internal/store"
	"github.com/athuyarain/burme-mark/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	kv, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			slog.Error("Failed to close store", "error", closeErr)
		}
	}()

	if err := kv.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Record stores over the persistence port.
	chats := records.NewChats(kv)
	images := records.NewImages(kv)
	projects := records.NewProjects(kv)
	preferences := records.NewPreferences(kv)
	aggregator := history.New(chats, images, projects)
	codec := backup.New(chats, images, projects, preferences)

	// Remote inference client.
	ai := inference.New(inference.Options{
		BaseURL:    cfg.Inference.BaseURL,
		CustomerID: cfg.Inference.CustomerID,
		AuthToken:  cfg.Inference.AuthToken,
		ChatModel:  cfg.Inference.ChatModel,
		ImageModel: cfg.Inference.ImageModel,
		Timeout:    cfg.Inference.Timeout,
	})

	// Code runner: JavaScript always runs in the embedded interpreter;
	// Python gets a Docker sandbox when a daemon is reachable.
	var pythonSandbox runner.Sandbox
	if cfg.Runner.DockerEnabled {
		sandbox, err := runner.NewDockerSandbox(context.Background())
		if err != nil {
			slog.Info("Docker unavailable, Python runs will be simulated", "error", err)
		} else {
			defer func() {
				if closeErr := sandbox.Close(); closeErr != nil {
					slog.Error("Failed to close docker sandbox", "error", closeErr)
				}
			}()
			pythonSandbox = sandbox
			slog.Info("Docker sandbox ready")
		}
	}
	runSvc := runner.New(pythonSandbox, cfg.Runner.RunTimeout)

	// Optional activity log.
	activityLog, err := activity.NewLogger(activity.Config{
		Enabled:   cfg.ActivityLog.Enabled,
		Path:      cfg.ActivityLog.Path,
		QueueSize: cfg.ActivityLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize activity log", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := activityLog.Close(); closeErr != nil {
			slog.Error("Failed to close activity log", "error", closeErr)
		}
	}()

	// Initialize handlers.
	handler := api.NewHandler(api.Deps{
		Chats:       chats,
		Images:      images,
		Projects:    projects,
		Preferences: preferences,
		Aggregator:  aggregator,
		Codec:       codec,
		AI:          ai,
		Runner:      runSvc,
		Activity:    activityLog,
	})
	healthHandler := api.NewHealthHandler(kv)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	healthHandler.RegisterHealth(r)
	handler.RegisterRoutes(r)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // completion calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
