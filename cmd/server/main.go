package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/waic/matchlog/internal/config"
	"github.com/waic/matchlog/internal/logging"
	"github.com/waic/matchlog/internal/record"
	"github.com/waic/matchlog/internal/sheets"
	"github.com/waic/matchlog/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"spreadsheet_id", cfg.Sheets.SpreadsheetID,
		"worksheet", cfg.Sheets.WorksheetName,
		"spreadsheet_id_fallback", cfg.Sheets.SpreadsheetIDFromFallback,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if cfg.Sheets.SpreadsheetIDFromFallback {
		slog.Warn("SPREADSHEET_ID is not set, using the documented fallback spreadsheet")
	}

	// The client handle is built lazily on first load and cached for the
	// process lifetime. Credential sources are tried in priority order:
	// secret from the environment first, local file second.
	provider := sheets.NewProvider(
		sheets.EnvCredentials{JSON: cfg.Sheets.CredentialsJSON},
		sheets.FileCredentials{Path: cfg.Sheets.CredentialsFile},
	)

	loader := record.NewLoader(provider)
	server := web.NewServer(loader, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
