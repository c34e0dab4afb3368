package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"alerscan/internal/config"
	"alerscan/internal/db"
	applog "alerscan/internal/log"
)

var (
	loadConfig   = config.Load
	openDatabase = db.Initialize
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "alerscanctl",
		Short:        "Operator tasks for the alerscan database",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadDotEnv()
		},
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newProvisionAdminCommand())
	return root
}

// connect opens the configured database. The in-memory mock is refused: every
// command here is meant to change a persistent database.
func connect(cmd *cobra.Command) (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	database, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	applog.Debug(cmd.Context(), "database opened", "dialect", database.Dialector.Name())
	return database, nil
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
}
