package repository

import (
	"context"
	"errors"

	"movie-quiz/internal/data/entity"
)

var ErrResultNotFound = errors.New("quiz result not found")

// ResultRepository stores finished quiz runs. Listing methods return the
// newest results first; Leaderboard returns them in ranking order.
type ResultRepository interface {
	Create(ctx context.Context, result *entity.QuizResult) error
	FindByID(ctx context.Context, id int64) (*entity.QuizResult, error)
	FindAll(ctx context.Context, limit int) ([]*entity.QuizResult, error)
	FindByUser(ctx context.Context, userName, userDorm string) ([]*entity.QuizResult, error)
	FindByUserName(ctx context.Context, userName string) ([]*entity.QuizResult, error)

	// Business queries
	Leaderboard(ctx context.Context, minQuestions, limit int) ([]*entity.QuizResult, error)
	Statistics(ctx context.Context) (*entity.Statistics, error)
}

type Repository struct {
	Result ResultRepository

	// Driver names the backend behind Result, reported by /health.
	Driver string
	// Cached is set when reads go through the Redis cache.
	Cached bool

	closers []func() error
}

func NewRepository(result ResultRepository, driver string, closers ...func() error) *Repository {
	return &Repository{
		Result:  result,
		Driver:  driver,
		closers: closers,
	}
}

// Close releases the underlying connections in reverse order of opening.
func (r *Repository) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
