package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/docstore/memstore"
	"github.com/qaforge/qaforge/internal/docstore/mongostore"
	"github.com/qaforge/qaforge/internal/docstore/pgstore"
	"github.com/qaforge/qaforge/internal/observability"
	"github.com/qaforge/qaforge/internal/platform/db"
	"github.com/qaforge/qaforge/internal/platform/mongodb"
)

// OpenStore connects the document store selected by STORE_DRIVER and prepares
// its schema. In test mode it always opens the in-memory store. A non-nil metrics instruments every store call.
func OpenStore(ctx context.Context, cfg *Config, logger *slog.Logger, metrics *observability.Metrics) (docstore.Store, error) {
	driver := storeDriver(cfg)
	store, err := openBackend(ctx, cfg, driver)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("document store ready", slog.String("driver", driver))
	}
	return metrics.InstrumentStore(store), nil
}

func openBackend(ctx context.Context, cfg *Config, driver string) (docstore.Store, error) {
	switch driver {
	case DriverMemory:
		return memstore.New(), nil
	case DriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
		if err != nil {
			return nil, err
		}
		if err := pgstore.MigrateUp(pool); err != nil {
			pool.Close()
			return nil, err
		}
		return pgstore.New(pool), nil
	case DriverMongo:
		database, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		store := mongostore.New(database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("app: unsupported store driver %q", driver)
	}
}
