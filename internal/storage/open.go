package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/database"
	"github.com/stemsi/kinderbook/internal/repository"
)

// Open returns the store selected by cfg.StorageDriver. The returned close
// function releases the database pool, if any.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Store, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageJSON:
		log.Info().Str("file", cfg.DataFile).Msg("Using JSON file storage")
		return NewJSONFileStore(cfg.DataFile), func() {}, nil
	case config.StorageBolt:
		log.Info().Str("file", cfg.BoltFile).Msg("Using bbolt storage")
		store, err := NewBoltStore(cfg.BoltFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresStore(repository.NewSnapshotRepository(pool)), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
