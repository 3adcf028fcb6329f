package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rokovo/widgetd/internal/api"
	"github.com/rokovo/widgetd/internal/config"
	"github.com/rokovo/widgetd/internal/events"
	"github.com/rokovo/widgetd/internal/rokovo"
	"github.com/rokovo/widgetd/internal/session"
	"github.com/rokovo/widgetd/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("widgetd starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream agent API
	if cfg.APIKey == "" {
		slog.Error("ROKOVO_API_KEY is required")
		os.Exit(1)
	}
	transport := rokovo.NewClient(cfg.APIBaseURL, cfg.APIKey)
	slog.Info("rokovo client ready", "url", cfg.APIBaseURL)

	// Transcript store (optional, the widget runs in-memory without it)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			slog.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, transcripts will not be persisted")
	}

	// Event publisher (optional)
	var pub *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		pub, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, running without event publishing")
	}

	sessions := session.NewManager(transport, cfg.AgentName, cfg.BusinessName, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, sessions, db, pub, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce startup
	if pub != nil {
		if err := pub.Publish(events.SubjectGatewayStarted, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish startup event", "error", err)
		}
	}

	slog.Info("widgetd ready", "port", cfg.Port, "agent", cfg.AgentName)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("widgetd stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
