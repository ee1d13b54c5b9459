package usecase

import (
	"context"
	"fmt"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/dto/response"

	"go.uber.org/zap"
)

// RecentGamesLimit is how many of a player's latest games user stats list.
const RecentGamesLimit = 5

type StatsService interface {
	GetStatistics(ctx context.Context) (*response.StatisticsResponse, error)
	GetUserStats(ctx context.Context, userName string) (*response.UserStatsResponse, error)
}

type statsService struct {
	results repository.ResultRepository
	log     *zap.Logger
}

func NewStatsService(results repository.ResultRepository, log *zap.Logger) StatsService {
	return &statsService{
		results: results,
		log:     log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) GetStatistics(ctx context.Context) (*response.StatisticsResponse, error) {
	stats, err := s.results.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}

	resp := response.StatisticsToResponse(stats)
	return &resp, nil
}

// GetUserStats aggregates every result saved under userName, across dorms.
func (s *statsService) GetUserStats(ctx context.Context, userName string) (*response.UserStatsResponse, error) {
	results, err := s.results.FindByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("get results of %s: %w", userName, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("user %s: %w", userName, ErrUserNotFound)
	}

	return &response.UserStatsResponse{
		Success:   true,
		UserStats: summarize(userName, results),
	}, nil
}

// summarize expects results newest first.
func summarize(userName string, results []*entity.QuizResult) response.UserStats {
	stats := response.UserStats{
		UserName:    userName,
		TotalGames:  len(results),
		RecentGames: make([]response.RecentGame, 0, RecentGamesLimit),
		LastPlayed:  results[0].CreatedAt.Format(response.PlayedAtLayout),
	}

	var totalError float64
	for i, r := range results {
		stats.TotalScore += r.Score
		stats.TotalQuestions += r.TotalQuestions
		totalError += r.TotalError
		if i == 0 || r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}

		if i < RecentGamesLimit {
			stats.RecentGames = append(stats.RecentGames, response.RecentGame{
				Score:          r.Score,
				TotalQuestions: r.TotalQuestions,
				Accuracy:       response.FormatAccuracy(r.Score, r.TotalQuestions),
				TotalError:     response.FormatError(r.TotalError),
				PlayedAt:       r.CreatedAt.Format(response.PlayedAtLayout),
			})
		}
	}

	stats.AverageAccuracy = response.FormatAccuracy(stats.TotalScore, stats.TotalQuestions)
	stats.TotalError = response.FormatError(totalError)
	return stats
}
