package app

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/storage"
)

// newCatalogStore opens the configured catalog store backend and
// returns it together with its closer.
func newCatalogStore(
	ctx context.Context, cfg config.Config,
) (storage.Store, closer, error) {
	const op = "app.newCatalogStore"

	switch cfg.Catalog.Backend {
	case "postgres":
		s, err := storage.NewSQLStore(ctx, cfg.Catalog.SQLDB)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, s, nil
	case "", "leveldb":
		s, err := storage.NewLevelDBStore(cfg.Catalog.LevelDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf(
			"%s: unknown catalog backend %q", op, cfg.Catalog.Backend,
		)
	}
}
