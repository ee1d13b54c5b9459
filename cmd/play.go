package cmd

import (
	"errors"
	"net/http"
	"os"
	"time"

	"movie-quiz/internal/client"
	"movie-quiz/internal/play"
	"movie-quiz/pkg/utils"

	"github.com/spf13/cobra"
)

func newPlayCmd(configPath *string) *cobra.Command {
	var (
		serverURL string
		timeLimit time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if serverURL == "" {
				serverURL = "http://localhost:" + config.App.Port
			}
			if timeLimit <= 0 {
				timeLimit = config.Quiz.TimeLimit
			}

			logger, err := utils.InitFileLogger(config.App.LogPath, config.App.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			api := client.New(serverURL, &http.Client{Timeout: 10 * time.Second})
			app := play.NewApp(api, cmd.OutOrStdout(), timeLimit, api.BaseURL(), logger)

			err = app.Run(cmd.Context(), os.Stdin)
			if errors.Is(err, play.ErrInputClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "quiz server base URL (default http://localhost:$PORT)")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "countdown per movie (overrides QUIZ_TIME_LIMIT)")
	return cmd
}
