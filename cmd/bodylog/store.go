package main

import (
	"context"
	"fmt"
	"io"

	"bodylog/internal/adapter/file"
	"bodylog/internal/adapter/memory"
	"bodylog/internal/adapter/postgres"
	"bodylog/internal/adapter/sqlite"
	"bodylog/internal/app"
	"bodylog/internal/config"
	"bodylog/internal/domain"
)

type closableStore interface {
	domain.DocumentStore
	io.Closer
}

func openStore(c config.Config) (closableStore, error) {
	switch c.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreFile:
		return file.Open(c.StorePath)
	case config.StoreSQLite:
		return sqlite.Open(c.StorePath)
	case config.StorePostgres:
		return postgres.Open(c.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

// services holds the application services for one process. They are
// constructed once and share the store.
type services struct {
	store        closableStore
	measurements *app.MeasurementService
	charts       *app.ChartsService
	meals        *app.MealService
}

func openServices(ctx context.Context, c config.Config) (*services, error) {
	store, err := openStore(c)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.Store, err)
	}

	ms := app.NewMeasurementService(store, logger)
	if _, err := ms.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	meals := app.NewMealService(store, c.Goals, logger)
	if _, err := meals.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &services{
		store:        store,
		measurements: ms,
		charts:       app.NewChartsService(ms),
		meals:        meals,
	}, nil
}

func (s *services) Close() error {
	return s.store.Close()
}
