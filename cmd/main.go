package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	_ "github.com/lib/pq"
	"github.com/rbeckert/forum/internal/config"
	"github.com/rbeckert/forum/internal/core"
	"github.com/rbeckert/forum/internal/utils/databaseutils"
)

type application struct {
	config *config.Config
	core   *core.Core
	logger *slog.Logger
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDBConnection(cfg.DB)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	app := &application{
		config: cfg,
		core:   core.NewCore(db, logger, databaseutils.NewSQLTemplate(db, cfg.DB.QueryTimeout)),
		logger: logger,
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	logger := slog.New(handler)
	return logger
}

func openDBConnection(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
