package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/usestring/typegen-mcp/pkg/mcpsrv"
)

var version = "dev"

func main() {
	// A missing .env file is fine; the environment alone may configure the server.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - TYPEGEN_TARGET: go, kotlin, or jsonschema (default: go)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(mcpsrv.WithVersion(version))
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting typegen MCP server on stdio", "version", version)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
