package main

import (
	"context"
	"fmt"

	"github.com/herald-hq/herald/internal/config"
	"github.com/herald-hq/herald/internal/handler"
	"github.com/herald-hq/herald/internal/message"
	"github.com/herald-hq/herald/internal/platform"
	"github.com/herald-hq/herald/internal/storage"
)

// app bundles the wired components every subcommand starts from.
type app struct {
	cfg      *config.Config
	store    *storage.SQLiteStorage
	handlers *handler.Handlers
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate delivery log: %w", err)
	}

	fetcher, err := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.APIKey)
	if err != nil {
		store.Close()
		return nil, err
	}

	handlers, err := handler.New(handler.Config{
		Fetcher:  fetcher,
		Builder:  message.NewBuilder(cfg.AppBaseURL),
		Recorder: store,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{cfg: cfg, store: store, handlers: handlers}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
