package entity

// Answer is one guess within a quiz run. It is stored inside the result row
// as a JSON array, hence the json tags.
type Answer struct {
	UserRating   float64 `json:"userRating"`
	ActualRating float64 `json:"actualRating"`
	MovieTitle   string  `json:"movieTitle"`
	TimedOut     bool    `json:"timedOut,omitempty"`
}

type QuizResult struct {
	BaseSimple
	UserName       string   `db:"user_name"`
	UserDorm       string   `db:"user_dorm"`
	Score          int      `db:"score"`
	TotalQuestions int      `db:"total_questions"`
	TotalError     float64  `db:"total_error"`
	Answers        []Answer `db:"answers"`
}

// Accuracy is the share of correct answers as a percentage.
func (r *QuizResult) Accuracy() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// Statistics aggregates every stored result.
type Statistics struct {
	TotalQuizzes      int64
	AvgScore          float64
	AvgTotalQuestions float64
	AvgTotalError     float64
}
