package usecase

import (
	"errors"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/data/repository"
	"movie-quiz/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidResult = errors.New("invalid result")
	ErrUserNotFound  = errors.New("user not found")
)

type Service struct {
	Movie       MovieService
	Result      ResultService
	Leaderboard LeaderboardService
	Stats       StatsService
}

func NewService(repo *repository.Repository, movies []entity.Movie, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Movie:       NewMovieService(movies, log),
		Result:      NewResultService(repo.Result, log),
		Leaderboard: NewLeaderboardService(repo.Result, config.Quiz, log),
		Stats:       NewStatsService(repo.Result, log),
	}
}
