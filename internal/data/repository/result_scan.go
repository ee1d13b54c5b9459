package repository

import (
	"encoding/json"
	"fmt"

	"movie-quiz/internal/data/entity"
)

const resultColumns = `id, user_name, user_dorm, score, total_questions, total_error, answers, created_at`

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*entity.QuizResult, error) {
	var (
		result  entity.QuizResult
		answers []byte
	)
	err := row.Scan(
		&result.ID,
		&result.UserName,
		&result.UserDorm,
		&result.Score,
		&result.TotalQuestions,
		&result.TotalError,
		&answers,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &result.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of result %d: %w", result.ID, err)
		}
	}
	if result.Answers == nil {
		result.Answers = []entity.Answer{}
	}

	return &result, nil
}

func encodeAnswers(answers []entity.Answer) (string, error) {
	if answers == nil {
		answers = []entity.Answer{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	return string(raw), nil
}
