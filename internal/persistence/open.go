package persistence

import (
	"fmt"

	"careerlens/internal/config"
)

// Open returns the Database selected by configuration.
func Open(cfg config.Database) (Database, error) {
	switch cfg.Driver {
	case "postgres":
		return OpenPostgres(cfg.DSN)
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}
}
