package store

import (
	"context"
	"fmt"

	"example.com/finance-tracker/backend/internal/config"
	"example.com/finance-tracker/backend/internal/database"
)

// Open создает хранилище коллекций по настроенному драйверу.
func Open(ctx context.Context, cfg config.StoreConfig, dbCfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := database.Open(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(ctx, pool)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
