package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-quiz/internal/catalog"
	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/wire"
	"movie-quiz/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, configPath, portFlag string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		config.App.Port = portFlag
	}

	logger, err := initLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	movies, err := catalog.Load(config.Quiz.MoviesPath)
	if err != nil {
		logger.Error("Failed to load movie catalog", zap.Error(err), zap.String("path", config.Quiz.MoviesPath))
		return err
	}

	repos, err := repository.Open(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to open result store", zap.Error(err))
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Warn("Failed to close result store", zap.Error(err))
		}
	}()

	logger.Info("Result store ready", zap.String("driver", repos.Driver), zap.Bool("cache", repos.Cached))

	app := wire.Wiring(repos, movies, config, logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves route until SIGINT, SIGTERM or ctx cancellation, then
// shuts down gracefully.
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%s", port)
	server := &http.Server{
		Addr:         addr,
		Handler:      route,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", "http://localhost"+addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-stop:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func initLogger(path string, debug bool) (*zap.Logger, error) {
	logger, err := utils.InitLogger(path, debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		return zap.NewProduction()
	}
	return logger, nil
}
