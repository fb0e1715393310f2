package main

import (
	"log/slog"

	"github.com/KirkDiggler/steel-compendium/internal/config"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/redis"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
)

var (
	storeFlag    string
	workersFlag  int
	portFlag     int
	httpPortFlag int
)

// openRepository opens the configured catalog store. The returned function
// releases it. A nil repository means no store is configured.
func openRepository() (catalog.Repository, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, noop, errors.Wrap(err, "failed to create redis client")
		}
		repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		slog.Info("Using redis catalog", "addr", cfg.RedisAddr)
		return repo, func() { _ = client.Close() }, nil

	case config.StoreSQLite:
		repo, err := catalog.NewSQLite(&catalog.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, noop, err
		}
		slog.Info("Using sqlite catalog", "path", cfg.SQLitePath)
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, noop, nil
	}
}
