package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movie-quiz/internal/data/entity"

	"go.uber.org/zap"
)

type sqliteResultRepository struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteResultRepository stores results in a local sqlite file opened by
// database.OpenSQLite.
func NewSQLiteResultRepository(db *sql.DB, log *zap.Logger) ResultRepository {
	return &sqliteResultRepository{
		db:  db,
		log: log.With(zap.String("repository", "result"), zap.String("driver", "sqlite")),
		now: time.Now,
	}
}

func (r *sqliteResultRepository) Create(ctx context.Context, result *entity.QuizResult) error {
	answers, err := encodeAnswers(result.Answers)
	if err != nil {
		return err
	}

	createdAt := r.now().UTC()
	query := `
		INSERT INTO quiz_results (user_name, user_dorm, score, total_questions, total_error, answers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		result.UserName,
		result.UserDorm,
		result.Score,
		result.TotalQuestions,
		result.TotalError,
		answers,
		createdAt,
	)
	if err != nil {
		r.log.Error("Failed to create result",
			zap.Error(err),
			zap.String("user_name", result.UserName),
			zap.String("user_dorm", result.UserDorm),
		)
		return fmt.Errorf("create result for %s (%s): %w", result.UserName, result.UserDorm, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted result id: %w", err)
	}

	result.ID = id
	result.CreatedAt = createdAt
	return nil
}

func (r *sqliteResultRepository) FindByID(ctx context.Context, id int64) (*entity.QuizResult, error) {
	query := `SELECT ` + resultColumns + ` FROM quiz_results WHERE id = ?`

	result, err := scanResult(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find result %d: %w", id, ErrResultNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find result by ID", zap.Error(err), zap.Int64("result_id", id))
		return nil, fmt.Errorf("find result %d: %w", id, err)
	}

	return result, nil
}

func (r *sqliteResultRepository) FindAll(ctx context.Context, limit int) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	return r.list(ctx, "find all results", query, limit)
}

func (r *sqliteResultRepository) FindByUser(ctx context.Context, userName, userDorm string) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE user_name = ? AND user_dorm = ?
		ORDER BY created_at DESC, id DESC
	`

	return r.list(ctx, "find results by user", query, userName, userDorm)
}

func (r *sqliteResultRepository) FindByUserName(ctx context.Context, userName string) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE user_name = ?
		ORDER BY created_at DESC, id DESC
	`

	return r.list(ctx, "find results by user name", query, userName)
}

func (r *sqliteResultRepository) Leaderboard(ctx context.Context, minQuestions, limit int) ([]*entity.QuizResult, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM quiz_results
		WHERE total_questions >= ?
		ORDER BY score DESC, total_error ASC, id ASC
		LIMIT ?
	`

	return r.list(ctx, "get leaderboard", query, minQuestions, limit)
}

func (r *sqliteResultRepository) Statistics(ctx context.Context) (*entity.Statistics, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(score), 0),
			COALESCE(AVG(total_questions), 0),
			COALESCE(AVG(total_error), 0)
		FROM quiz_results
	`

	var stats entity.Statistics
	err := r.db.QueryRowContext(ctx, query).Scan(
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

func (r *sqliteResultRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.QuizResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
