package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remoteURL := flag.String("remote", "", "base URL of a running LiftLog server; when set, data is read over its REST API instead of Postgres")
	userLogin := flag.String("user", "local", "login of the user to query (local mode)")
	flag.Parse()

	// Stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	userID := 1

	if *remoteURL != "" {
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		userID, err = db.GetOrCreateUser(ctx, *userLogin, *userLogin)
		if err != nil {
			log.Error("failed to resolve user", "login", *userLogin, "error", err)
			os.Exit(1)
		}
		ds = db
	}

	srv := mcp.New(ds, Version, log)

	err := mcpserver.ServeStdio(srv,
		mcpserver.WithErrorLogger(slog.NewLogLogger(log.Handler(), slog.LevelError)),
		mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return mcp.WithUserID(ctx, userID)
		}),
	)
	if err != nil && err != io.EOF {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
