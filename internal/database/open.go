package database

import (
	"context"
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/store/gormstore"
	"fintrack/internal/store/localstore"
	"fintrack/internal/store/mongostore"
)

// Open builds the store selected by cfg.Backend, prepares its schema and
// seeds the default categories. Every call on the returned store is bounded
// by cfg.Timeout.
func Open(ctx context.Context, cfg *Config) (store.Store, error) {
	var (
		s   store.Store
		err error
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		s, err = openPostgres(cfg)
	case config.BackendSQLite:
		s, err = openSQLite(cfg)
	case config.BackendMongo:
		s, err = openMongo(ctx, cfg)
	case config.BackendLocal:
		s, err = localstore.Open(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	s = store.WithTimeout(s, cfg.Timeout)
	if err := s.SeedCategories(ctx, models.DefaultCategories()); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	logger.Get().Infow("Store ready", "backend", cfg.Backend)
	return s, nil
}

func openPostgres(cfg *Config) (store.Store, error) {
	manager, err := NewManager(cfg)
	if err != nil {
		return nil, err
	}
	return managedStore(manager, (*Manager).RunMigrations)
}

// managedStore wraps manager in a store once prepare succeeds. The
// connection pool is closed when prepare fails.
func managedStore(manager *Manager, prepare func(*Manager) error) (store.Store, error) {
	if err := prepare(manager); err != nil {
		if cerr := manager.Close(); cerr != nil {
			logger.Get().Warnw("Failed to close database after setup error", "error", cerr)
		}
		return nil, err
	}
	return gormstore.New(manager.DB()), nil
}

func openSQLite(cfg *Config) (store.Store, error) {
	manager, err := NewSQLiteManager(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	return gormstore.New(manager.DB()), nil
}

func openMongo(ctx context.Context, cfg *Config) (store.Store, error) {
	connectCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return mongostore.New(connectCtx, cfg.MongoURI, cfg.MongoDB)
}
