package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"clientrepo/internal/codec"
	"clientrepo/internal/config"
	"clientrepo/internal/database"
	handlers "clientrepo/internal/http/handler"
	"clientrepo/internal/repository"
	"clientrepo/internal/repository/file"
	"clientrepo/internal/repository/objectstore"
	"clientrepo/internal/repository/postgres"
	"clientrepo/internal/repository/query"
	"clientrepo/internal/storage"
)

// openedStore is the query-decorated repository for the configured backend.
type openedStore struct {
	repo    *query.Repository
	health  handlers.HealthChecker
	release func() error
}

var newMinIO = storage.NewMinIO

// openStore selects the persistence medium from cfg.Storage.Backend and
// loads the initial working set.
func openStore(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*openedStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return openBackend(ctx, file.NewJSON(cfg.Storage.FilePath))
	case config.BackendYAML:
		return openBackend(ctx, file.NewYAML(cfg.Storage.FilePath))
	case config.BackendFile:
		b, err := file.Open(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		return openBackend(ctx, b)
	case config.BackendS3:
		c, err := codec.ForPath(cfg.Storage.ObjectKey)
		if err != nil {
			return nil, err
		}
		objStore, err := newMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("initialize object storage: %w", err)
		}
		return openBackend(ctx, objectstore.New(objStore, cfg.Storage.ObjectKey, c))
	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, log.Named("database"))
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		st, err := openRowStore(ctx, db, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openBackend(ctx context.Context, b repository.Backend) (*openedStore, error) {
	repo, err := repository.New(ctx, b)
	if err != nil {
		return nil, err
	}
	health := func(ctx context.Context) error {
		_, err := b.LoadAll(ctx)
		return err
	}
	return &openedStore{repo: query.NewRepository(repo), health: health, release: func() error { return nil }}, nil
}

// openRowStore expects the clients table to exist already.
func openRowStore(ctx context.Context, db *sql.DB, log *zap.Logger) (*openedStore, error) {
	rows := query.NewRowStore(postgres.NewClientPostgres(db, log.Named("postgres")))
	adapter, err := repository.NewRowStoreAdapter(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &openedStore{repo: query.NewRepository(adapter), health: db.PingContext, release: db.Close}, nil
}
