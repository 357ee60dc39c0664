package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mayank1ahuja/da-walmart-project/internal/config"
	"github.com/mayank1ahuja/da-walmart-project/internal/etl"
	"github.com/mayank1ahuja/da-walmart-project/internal/logging"
	"github.com/mayank1ahuja/da-walmart-project/internal/storage"
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

	// CLI argument overrides the configured input path
	csvPath := cfg.Input.Path
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	if csvPath == "" {
		slog.Error("no input file: set INPUT_CSV_PATH or pass a path argument")
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"input", csvPath,
		"table", cfg.Sink.Table,
		"db_max_conns", cfg.Database.MaxConns,
	)

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	store := storage.New(pool, cfg.Sink.Table)
	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	loader := &etl.Loader{
		Path:        csvPath,
		Delimiter:   cfg.DelimiterRune(),
		MaxFileSize: cfg.Input.MaxFileSize,
	}
	pipeline := etl.NewPipeline(loader, store)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Sink.Timeout)
	defer cancel()

	result, err := pipeline.Run(runCtx)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	// Round-trip verification against the sink: the row count and the
	// column set must both survive the load.
	count, err := store.Count(ctx)
	if err != nil {
		slog.Error("failed to verify row count", "error", err)
		os.Exit(1)
	}
	if count != result.RowsWritten {
		slog.Error("row count mismatch after load",
			"written", result.RowsWritten, "in_table", count)
		os.Exit(1)
	}

	cols, err := store.Columns(ctx)
	if err != nil {
		slog.Error("failed to verify table columns", "error", err)
		os.Exit(1)
	}
	if !slices.Equal(cols, storage.ExpectedColumns()) {
		slog.Error("column mismatch after load",
			"want", storage.ExpectedColumns(), "got", cols)
		os.Exit(1)
	}

	run, err := store.LastRun(ctx)
	if err != nil {
		slog.Error("failed to read load run record", "error", err)
		os.Exit(1)
	}

	slog.Info("load verified",
		"table", cfg.Sink.Table,
		"run_id", run.ID,
		"rows", count,
		"dropped", result.Report.Dropped(),
		"duration", result.Duration,
	)
}
