package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/quiz"

	"go.uber.org/zap"
)

type memResultRepository struct {
	mu      sync.RWMutex
	results []*entity.QuizResult
	nextID  int64
	log     *zap.Logger
	now     func() time.Time
}

// NewMemResultRepository keeps results in process memory. Everything is lost
// on restart; it backs demos and tests without any database.
func NewMemResultRepository(log *zap.Logger) ResultRepository {
	return &memResultRepository{
		nextID: 1,
		log:    log.With(zap.String("repository", "result"), zap.String("driver", "memory")),
		now:    time.Now,
	}
}

func (r *memResultRepository) Create(ctx context.Context, result *entity.QuizResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result.ID = r.nextID
	result.CreatedAt = r.now().UTC()
	r.nextID++

	r.results = append(r.results, clone(result))
	r.log.Debug("Result stored", zap.Int64("result_id", result.ID), zap.Int("total", len(r.results)))
	return nil
}

func (r *memResultRepository) FindByID(ctx context.Context, id int64) (*entity.QuizResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.results {
		if res.ID == id {
			return clone(res), nil
		}
	}
	return nil, fmt.Errorf("find result %d: %w", id, ErrResultNotFound)
}

func (r *memResultRepository) FindAll(ctx context.Context, limit int) ([]*entity.QuizResult, error) {
	return r.newest(func(*entity.QuizResult) bool { return true }, limit), nil
}

func (r *memResultRepository) FindByUser(ctx context.Context, userName, userDorm string) ([]*entity.QuizResult, error) {
	return r.newest(func(res *entity.QuizResult) bool {
		return res.UserName == userName && res.UserDorm == userDorm
	}, 0), nil
}

func (r *memResultRepository) FindByUserName(ctx context.Context, userName string) ([]*entity.QuizResult, error) {
	return r.newest(func(res *entity.QuizResult) bool {
		return res.UserName == userName
	}, 0), nil
}

func (r *memResultRepository) Leaderboard(ctx context.Context, minQuestions, limit int) ([]*entity.QuizResult, error) {
	r.mu.RLock()
	ranked := quiz.RankResults(r.results, minQuestions, limit)
	r.mu.RUnlock()

	out := make([]*entity.QuizResult, len(ranked))
	for i, res := range ranked {
		out[i] = clone(res)
	}
	return out, nil
}

func (r *memResultRepository) Statistics(ctx context.Context) (*entity.Statistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entity.Statistics{TotalQuizzes: int64(len(r.results))}
	if len(r.results) == 0 {
		return stats, nil
	}

	for _, res := range r.results {
		stats.AvgScore += float64(res.Score)
		stats.AvgTotalQuestions += float64(res.TotalQuestions)
		stats.AvgTotalError += res.TotalError
	}
	n := float64(len(r.results))
	stats.AvgScore /= n
	stats.AvgTotalQuestions /= n
	stats.AvgTotalError /= n

	return stats, nil
}

// newest returns copies of the matching results, latest first.
func (r *memResultRepository) newest(match func(*entity.QuizResult) bool, limit int) []*entity.QuizResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.QuizResult, 0)
	for _, res := range r.results {
		if match(res) {
			out = append(out, clone(res))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clone(res *entity.QuizResult) *entity.QuizResult {
	c := *res
	c.Answers = make([]entity.Answer, len(res.Answers))
	copy(c.Answers, res.Answers)
	return &c
}
