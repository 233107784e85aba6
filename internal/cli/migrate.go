package cli

import (
	"fmt"
	"newel_classroom/internal/config"
	"newel_classroom/pkg/database"
	"newel_classroom/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewMigrateCmd creates or upgrades the users, prompts, responses and grades tables.
func NewMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(*configDir)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

// openDB loads the config and opens the database without starting the server.
func openDB(configDir string) (*gorm.DB, func(), error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = logger.Log.Sync()
	}
	return db, cleanup, nil
}
