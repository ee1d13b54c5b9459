package request

import "movie-quiz/internal/data/entity"

// SaveResultRequest is the body of POST /api/save-result. Numeric fields are
// pointers so that an explicit 0 is told apart from a missing field.
type SaveResultRequest struct {
	UserName       string          `json:"userName" validate:"required,max=50"`
	UserDorm       string          `json:"userDorm" validate:"required,max=50"`
	Score          *int            `json:"score" validate:"required,min=0"`
	TotalQuestions *int            `json:"totalQuestions" validate:"required,min=0"`
	TotalError     *float64        `json:"totalError" validate:"required,gte=0"`
	Answers        []AnswerRequest `json:"answers" validate:"required,dive"`
}

type AnswerRequest struct {
	UserRating   *float64 `json:"userRating" validate:"required,gte=0,lte=5"`
	ActualRating *float64 `json:"actualRating" validate:"required,gte=0,lte=5"`
	MovieTitle   string   `json:"movieTitle" validate:"required,max=200"`
	TimedOut     bool     `json:"timedOut,omitempty"`
}

// ToEntity assumes the request has passed validation.
func (r SaveResultRequest) ToEntity() *entity.QuizResult {
	answers := make([]entity.Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, entity.Answer{
			UserRating:   *a.UserRating,
			ActualRating: *a.ActualRating,
			MovieTitle:   a.MovieTitle,
			TimedOut:     a.TimedOut,
		})
	}

	return &entity.QuizResult{
		UserName:       r.UserName,
		UserDorm:       r.UserDorm,
		Score:          *r.Score,
		TotalQuestions: *r.TotalQuestions,
		TotalError:     *r.TotalError,
		Answers:        answers,
	}
}

// NewSaveResultRequest builds the request body for a finished quiz run.
func NewSaveResultRequest(result entity.QuizResult) SaveResultRequest {
	answers := make([]AnswerRequest, 0, len(result.Answers))
	for _, a := range result.Answers {
		userRating, actualRating := a.UserRating, a.ActualRating
		answers = append(answers, AnswerRequest{
			UserRating:   &userRating,
			ActualRating: &actualRating,
			MovieTitle:   a.MovieTitle,
			TimedOut:     a.TimedOut,
		})
	}

	score, total, totalError := result.Score, result.TotalQuestions, result.TotalError
	return SaveResultRequest{
		UserName:       result.UserName,
		UserDorm:       result.UserDorm,
		Score:          &score,
		TotalQuestions: &total,
		TotalError:     &totalError,
		Answers:        answers,
	}
}
