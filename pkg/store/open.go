package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pluqqy/pluqqy-account/internal/config"
	"github.com/pluqqy/pluqqy-account/pkg/store/filestore"
	"github.com/pluqqy/pluqqy-account/pkg/store/postgres"
)

// Open connects the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, dataDir string) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return s, nil
	case config.DriverFile, "":
		s, err := filestore.New(filepath.Join(dataDir, "store"))
		if err != nil {
			return nil, fmt.Errorf("store.Open: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("store.Open: unknown driver %q", cfg.Driver)
	}
}

var (
	_ Store = (*filestore.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)
