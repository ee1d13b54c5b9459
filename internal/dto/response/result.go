package response

import (
	"time"

	"movie-quiz/internal/data/entity"
	"movie-quiz/pkg/utils"
)

// PlayedAtLayout is the calendar-date form used for playedAt and lastPlayed.
const PlayedAtLayout = "2006-01-02"

type SaveResultResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type AnswerResponse struct {
	UserRating   float64 `json:"userRating"`
	ActualRating float64 `json:"actualRating"`
	MovieTitle   string  `json:"movieTitle"`
	TimedOut     bool    `json:"timedOut,omitempty"`
}

type ResultResponse struct {
	ID             int64            `json:"id"`
	UserName       string           `json:"userName"`
	UserDorm       string           `json:"userDorm"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	TotalError     float64          `json:"totalError"`
	Answers        []AnswerResponse `json:"answers"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type ResultListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Results []ResultResponse `json:"results"`
}

// Helper converters
func ResultToResponse(result *entity.QuizResult) ResultResponse {
	answers := make([]AnswerResponse, 0, len(result.Answers))
	for _, a := range result.Answers {
		answers = append(answers, AnswerResponse(a))
	}

	return ResultResponse{
		ID:             result.ID,
		UserName:       result.UserName,
		UserDorm:       result.UserDorm,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		TotalError:     result.TotalError,
		Answers:        answers,
		CreatedAt:      result.CreatedAt,
	}
}

func NewResultListResponse(results []*entity.QuizResult) ResultListResponse {
	items := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		items = append(items, ResultToResponse(r))
	}
	return ResultListResponse{
		Success: true,
		Count:   len(items),
		Results: items,
	}
}

// FormatAccuracy renders score/total as a percentage with one decimal, "0.0"
// when total is zero.
func FormatAccuracy(score, total int) string {
	if total <= 0 {
		return utils.FormatFixed(0, 1)
	}
	return utils.FormatFixed(float64(score)/float64(total)*100, 1)
}

// FormatError renders an accumulated error with two decimals.
func FormatError(totalError float64) string {
	return utils.FormatFixed(totalError, 2)
}
