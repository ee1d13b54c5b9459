package quiz

import (
	"math"

	"movie-quiz/internal/data/entity"
)

const (
	MinRating = 0.0
	MaxRating = 5.0

	// Tolerance is the largest absolute error still counted as correct.
	Tolerance = 0.2

	// absorbs float noise such as |3.2-3.0| = 0.20000000000000018
	epsilon = 1e-9
)

// AbsError is the absolute deviation of a guess from the true rating.
func AbsError(userRating, actualRating float64) float64 {
	return math.Abs(userRating - actualRating)
}

// IsCorrect reports whether the guess is within Tolerance of the true rating.
func IsCorrect(userRating, actualRating float64) bool {
	return AbsError(userRating, actualRating) <= Tolerance+epsilon
}

// ValidRating reports whether r lies in [MinRating, MaxRating].
func ValidRating(r float64) bool {
	return !math.IsNaN(r) && r >= MinRating && r <= MaxRating
}

// Score counts correct answers and sums absolute errors. Timed-out answers
// add their error but never count as correct.
func Score(answers []entity.Answer) (correct int, totalError float64) {
	for _, a := range answers {
		totalError += AbsError(a.UserRating, a.ActualRating)
		if !a.TimedOut && IsCorrect(a.UserRating, a.ActualRating) {
			correct++
		}
	}
	return correct, totalError
}

// TotalError is the sum of absolute errors; zero for no answers.
func TotalError(answers []entity.Answer) float64 {
	_, total := Score(answers)
	return total
}

// RoundError rounds to two decimals for display.
func RoundError(e float64) float64 {
	return math.Round(e*100) / 100
}
