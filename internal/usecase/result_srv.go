package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/dto/request"
	"movie-quiz/internal/dto/response"

	"go.uber.org/zap"
)

// ResultListLimit caps GET /api/results; smaller limits may be requested.
const ResultListLimit = 100

type ResultService interface {
	SaveResult(ctx context.Context, req *request.SaveResultRequest) (*response.SaveResultResponse, error)
	ListResults(ctx context.Context, limit int) (*response.ResultListResponse, error)
	GetUserResults(ctx context.Context, userName, userDorm string) (*response.ResultListResponse, error)
}

type resultService struct {
	results repository.ResultRepository
	log     *zap.Logger
}

func NewResultService(results repository.ResultRepository, log *zap.Logger) ResultService {
	return &resultService{
		results: results,
		log:     log.With(zap.String("service", "result")),
	}
}

// SaveResult stores the totals as submitted by the client. Field validation
// happens in the handler; only totals that cannot describe a real run are
// rejected here.
func (s *resultService) SaveResult(ctx context.Context, req *request.SaveResultRequest) (*response.SaveResultResponse, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.UserDorm = strings.TrimSpace(req.UserDorm)

	if err := checkTotals(req); err != nil {
		s.log.Warn("Save result rejected", zap.Error(err))
		return nil, err
	}

	result := req.ToEntity()
	if err := s.results.Create(ctx, result); err != nil {
		s.log.Error("Failed to save result",
			zap.Error(err),
			zap.String("user_name", result.UserName),
			zap.String("user_dorm", result.UserDorm),
		)
		return nil, fmt.Errorf("save result: %w", err)
	}

	s.log.Info("Result saved",
		zap.Int64("result_id", result.ID),
		zap.String("user_name", result.UserName),
		zap.String("user_dorm", result.UserDorm),
		zap.Int("score", result.Score),
		zap.Int("total_questions", result.TotalQuestions),
		zap.Float64("total_error", result.TotalError),
	)

	return &response.SaveResultResponse{
		Success: true,
		ID:      result.ID,
		Message: "Result saved successfully",
	}, nil
}

func (s *resultService) ListResults(ctx context.Context, limit int) (*response.ResultListResponse, error) {
	if limit <= 0 || limit > ResultListLimit {
		limit = ResultListLimit
	}

	results, err := s.results.FindAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	resp := response.NewResultListResponse(results)
	return &resp, nil
}

func (s *resultService) GetUserResults(ctx context.Context, userName, userDorm string) (*response.ResultListResponse, error) {
	results, err := s.results.FindByUser(ctx, userName, userDorm)
	if err != nil {
		return nil, fmt.Errorf("get results of %s (%s): %w", userName, userDorm, err)
	}

	resp := response.NewResultListResponse(results)
	return &resp, nil
}

func checkTotals(req *request.SaveResultRequest) error {
	switch {
	case req.UserName == "" || req.UserDorm == "":
		return fmt.Errorf("%w: userName and userDorm are required", ErrInvalidResult)
	case req.Score == nil || req.TotalQuestions == nil || req.TotalError == nil:
		return fmt.Errorf("%w: score, totalQuestions and totalError are required", ErrInvalidResult)
	case *req.Score < 0 || *req.TotalError < 0:
		return fmt.Errorf("%w: score and totalError must not be negative", ErrInvalidResult)
	case *req.Score > *req.TotalQuestions:
		return fmt.Errorf("%w: score %d exceeds totalQuestions %d", ErrInvalidResult, *req.Score, *req.TotalQuestions)
	}
	return nil
}
