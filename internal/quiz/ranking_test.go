package quiz_test

import (
	"testing"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/quiz"
)

func result(id int64, score, total int, totalError float64) *entity.QuizResult {
	return &entity.QuizResult{
		BaseSimple:     entity.BaseSimple{ID: id},
		UserName:       "user",
		UserDorm:       "101",
		Score:          score,
		TotalQuestions: total,
		TotalError:     totalError,
	}
}

func TestRankResultsOrdering(t *testing.T) {
	results := []*entity.QuizResult{
		result(1, 5, 10, 3.0),
		result(2, 8, 10, 2.0),
		result(3, 8, 10, 1.0),
		result(4, 9, 9, 0.5),
		result(5, 8, 10, 1.0),
	}

	ranked := quiz.RankResults(results, 5, 10)
	wantIDs := []int64{4, 3, 5, 2, 1}
	if len(ranked) != len(wantIDs) {
		t.Fatalf("expected %d entries, got %d", len(wantIDs), len(ranked))
	}
	for i, id := range wantIDs {
		if ranked[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, ranked[i].ID)
		}
	}

	for i := 1; i < len(ranked); i++ {
		if quiz.Ranks(ranked[i], ranked[i-1]) {
			t.Fatalf("entries %d and %d out of order", i-1, i)
		}
	}
}

func TestRankResultsFiltersShortQuizzes(t *testing.T) {
	results := []*entity.QuizResult{
		result(1, 4, 4, 0),
		result(2, 1, 5, 4.0),
	}

	ranked := quiz.RankResults(results, 5, 10)
	if len(ranked) != 1 || ranked[0].ID != 2 {
		t.Fatalf("expected only the 5-question result, got %+v", ranked)
	}
}

func TestRankResultsLimit(t *testing.T) {
	var results []*entity.QuizResult
	for i := 0; i < 15; i++ {
		results = append(results, result(int64(i+1), i%6, 5, float64(i)))
	}

	ranked := quiz.RankResults(results, 5, 10)
	if len(ranked) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(ranked))
	}
	if results[0].ID != 1 {
		t.Fatalf("input slice was reordered")
	}
}
