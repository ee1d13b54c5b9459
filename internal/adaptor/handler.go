package adaptor

import (
	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/usecase"
	"movie-quiz/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie       *MovieHandler
	Result      *ResultHandler
	Leaderboard *LeaderboardHandler
	Stats       *StatsHandler
	Health      *HealthHandler
}

func NewHandler(service *usecase.Service, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Movie:       NewMovieHandler(service.Movie, log),
		Result:      NewResultHandler(service.Result, log),
		Leaderboard: NewLeaderboardHandler(service.Leaderboard, log),
		Stats:       NewStatsHandler(service.Stats, log),
		Health:      NewHealthHandler(config.App.Env, repo.Driver, repo.Cached),
	}
}
