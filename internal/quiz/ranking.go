package quiz

import (
	"sort"

	"movie-quiz/internal/data/entity"
)

const (
	DefaultLeaderboardSize         = 10
	DefaultLeaderboardMinQuestions = 5
)

// Ranks reports whether a should be listed above b: higher score first, then
// lower total error, then earlier insertion.
func Ranks(a, b *entity.QuizResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.TotalError != b.TotalError {
		return a.TotalError < b.TotalError
	}
	return a.ID < b.ID
}

// RankResults keeps results with at least minQuestions questions, orders them
// with Ranks and returns at most limit of them. The input slice is not modified.
func RankResults(results []*entity.QuizResult, minQuestions, limit int) []*entity.QuizResult {
	eligible := make([]*entity.QuizResult, 0, len(results))
	for _, r := range results {
		if r.TotalQuestions >= minQuestions {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return Ranks(eligible[i], eligible[j])
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}
