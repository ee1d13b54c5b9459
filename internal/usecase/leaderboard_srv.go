package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/dto/response"
	"movie-quiz/internal/quiz"
	"movie-quiz/pkg/utils"

	"go.uber.org/zap"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) (*response.LeaderboardResponse, error)
}

type leaderboardService struct {
	results      repository.ResultRepository
	size         int
	minQuestions int
	now          func() time.Time
	log          *zap.Logger
}

func NewLeaderboardService(results repository.ResultRepository, config utils.QuizConfig, log *zap.Logger) LeaderboardService {
	size := config.LeaderboardSize
	if size <= 0 {
		size = quiz.DefaultLeaderboardSize
	}
	minQuestions := config.LeaderboardMinQuestions
	if minQuestions <= 0 {
		minQuestions = quiz.DefaultLeaderboardMinQuestions
	}

	return &leaderboardService{
		results:      results,
		size:         size,
		minQuestions: minQuestions,
		now:          time.Now,
		log:          log.With(zap.String("service", "leaderboard")),
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context) (*response.LeaderboardResponse, error) {
	ranked, err := s.results.Leaderboard(ctx, s.minQuestions, s.size)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	s.log.Debug("Leaderboard served", zap.Int("entries", len(ranked)))

	resp := response.NewLeaderboardResponse(ranked, s.now())
	return &resp, nil
}
