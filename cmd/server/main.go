package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vango-go/vango"

	"creator_inbox/app/routes"
	"creator_inbox/app/routes/api"
	"creator_inbox/internal/cache"
	"creator_inbox/internal/config"
	"creator_inbox/internal/db"
	"creator_inbox/internal/inbox"
	convsvc "creator_inbox/internal/services/conversations"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := db.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open sqlite store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var summaries cache.Storage[[]inbox.ConversationSummary] = cache.NewMemory[[]inbox.ConversationSummary](cfg.CacheTTL)
	if cfg.CacheURL != "" {
		remote, err := cache.NewRedis[[]inbox.ConversationSummary](ctx, cfg.CacheURL, "inbox:", cfg.CacheTTL)
		if err != nil {
			slog.Error("failed to connect summary cache", "error", err)
			os.Exit(1)
		}
		defer remote.Close()
		summaries = remote
	}
	service := convsvc.NewService(store, summaries, cfg)

	app, err := vango.New(vango.Config{
		Session: vango.SessionConfig{
			ResumeWindow: vango.ResumeWindow(30 * time.Second),
		},
		Static: vango.StaticConfig{
			Dir:    "public",
			Prefix: "/",
		},
		DevMode: cfg.DevMode,
	})
	if err != nil {
		slog.Error("failed to create app", "error", err)
		os.Exit(1)
	}

	routes.SetDeps(routes.Deps{
		Conversations: service,
	})
	api.SetService(service)
	routes.Register(app, cfg.BasePath)

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr, "inbox", cfg.BasePath)
	if err := app.Run(ctx, addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
