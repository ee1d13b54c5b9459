package wire

import (
	"net/http"

	"movie-quiz/internal/adaptor"
	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/usecase"
	"movie-quiz/pkg/middleware"
	"movie-quiz/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(repo *repository.Repository, movies []entity.Movie, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, movies, config, logger)
	handler := adaptor.NewHandler(service, repo, config, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORSOrigins...))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method not allowed")
	})

	wireMovie(r, handler.Movie)
	wireResult(r, handler.Result)
	wireStats(r, handler.Leaderboard, handler.Stats)

	r.Get("/health", handler.Health.Health)

	return r
}
