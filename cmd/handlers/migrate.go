package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"careerlens/internal/config"
	"careerlens/internal/logger"
	"careerlens/internal/persistence"
)

// NewMigrateCmd creates the migrate command for schema setup.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := persistence.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			logger.Info("database schema up to date", "driver", cfg.Database.Driver)
			return nil
		},
	}
	return cmd
}
