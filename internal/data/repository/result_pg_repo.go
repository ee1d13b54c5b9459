package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-quiz/internal/data/entity"
	"movie-quiz/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type pgResultRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

// NewPgResultRepository stores results in the hosted postgres quiz_results table.
func NewPgResultRepository(db database.PgxIface, log *zap.Logger) ResultRepository {
	return &pgResultRepository{
		db:  db,
		log: log.With(zap.String("repository", "result"), zap.String("driver", "postgres")),
	}
}

func (r *pgResultRepository) Create(ctx context.Context, result *entity.QuizResult) error {
	answers, err := encodeAnswers(result.Answers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_results (user_name, user_dorm, score, total_questions, total_error, answers)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		result.UserName,
		result.UserDorm,
		result.Score,
		result.TotalQuestions,
		result.TotalError,
		answers,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create result",
			zap.Error(err),
			zap.String("user_name", result.UserName),
			zap.String("user_dorm", result.UserDorm),
		)
		return fmt.Errorf("create result for %s (%s): %w", result.UserName, result.UserDorm, err)
	}

	return nil
}

func (r *pgResultRepository) FindByID(ctx context.Context, id int64) (*entity.QuizResult, error) {
	query := `SELECT ` + resultColumns + ` FROM quiz_results WHERE id = $1`

	result, err := scanResult(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find result %d: %w", id, ErrResultNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find result by ID", zap.Error(err), zap.Int64("result_id", id))
		return nil, fmt.Errorf("find result %d: %w", id, err)
	}

	return result, nil
}

func (r *pgResultRepository) FindAll(ctx context.Context, limit int) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	return r.list(ctx, "find all results", query, limit)
}

func (r *pgResultRepository) FindByUser(ctx context.Context, userName, userDorm string) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE user_name = $1 AND user_dorm = $2
		ORDER BY created_at DESC, id DESC
	`

	return r.list(ctx, "find results by user", query, userName, userDorm)
}

func (r *pgResultRepository) FindByUserName(ctx context.Context, userName string) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE user_name = $1
		ORDER BY created_at DESC, id DESC
	`

	return r.list(ctx, "find results by user name", query, userName)
}

func (r *pgResultRepository) Leaderboard(ctx context.Context, minQuestions, limit int) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE total_questions >= $1
		ORDER BY score DESC, total_error ASC, id ASC
		LIMIT $2
	`

	return r.list(ctx, "get leaderboard", query, minQuestions, limit)
}

func (r *pgResultRepository) Statistics(ctx context.Context) (*entity.Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(score), 0)::float8,
			COALESCE(AVG(total_questions), 0)::float8,
			COALESCE(AVG(total_error), 0)::float8
		FROM quiz_results
	`

	var stats entity.Statistics
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalQuizzes,
		&stats.AvgScore,
		&stats.AvgTotalQuestions,
		&stats.AvgTotalError,
	)
	if err != nil {
		r.log.Error("Failed to get statistics", zap.Error(err))
		return nil, fmt.Errorf("get statistics: %w", err)
	}

	return &stats, nil
}

func (r *pgResultRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.QuizResult, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	results := make([]*entity.QuizResult, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			r.log.Error("Failed to scan result row", zap.Error(err))
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return results, nil
}
