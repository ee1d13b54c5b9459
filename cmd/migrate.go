package cmd

import (
	"context"
	"fmt"

	"movie-quiz/pkg/database"
	"movie-quiz/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply postgres schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), *configPath)
		},
	}
}

func runMigrate(ctx context.Context, configPath string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if config.Database.Driver != utils.DriverPostgres {
		return fmt.Errorf("migrate needs the postgres driver, DB_DRIVER is %q (sqlite creates its schema on open)", config.Database.Driver)
	}

	logger, err := initLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	applied, err := database.Migrate(ctx, config.Database.DSN())
	if err != nil {
		logger.Error("Migration failed", zap.Error(err))
		return err
	}

	if len(applied) == 0 {
		logger.Info("Schema is up to date")
		return nil
	}
	logger.Info("Migrations applied", zap.Strings("migrations", applied))
	return nil
}
