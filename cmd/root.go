package cmd

import (
	"fmt"
	"os"

	"movie-quiz/pkg/utils"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "movie-quiz",
		Short:         "Movie rating quiz: result API, leaderboard and terminal player",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = ".env"
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to env file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newMigrateCmd(&configPath))
	cmd.AddCommand(newPlayCmd(&configPath))
	return cmd
}

func loadConfig(path string) (*utils.Config, error) {
	config, err := utils.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return config, nil
}
