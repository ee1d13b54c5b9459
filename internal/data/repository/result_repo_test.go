package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/data/repository"
	"movie-quiz/pkg/database"

	"go.uber.org/zap"
)

func newSQLiteRepo(t *testing.T) repository.ResultRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.db")
	db, err := database.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewSQLiteResultRepository(db, zap.NewNop())
}

func result(name, dorm string, score, total int, totalError float64) *entity.QuizResult {
	answers := make([]entity.Answer, 0, total)
	for i := 0; i < total; i++ {
		answers = append(answers, entity.Answer{UserRating: 3, ActualRating: 3, MovieTitle: "Movie"})
	}
	return &entity.QuizResult{
		UserName:       name,
		UserDorm:       dorm,
		Score:          score,
		TotalQuestions: total,
		TotalError:     totalError,
		Answers:        answers,
	}
}

// exerciseResultRepository checks the behaviour every backend must share.
func exerciseResultRepository(t *testing.T, repo repository.ResultRepository) {
	t.Helper()
	ctx := context.Background()

	seed := []*entity.QuizResult{
		result("alice", "102", 4, 5, 2.0),
		result("bob", "201", 4, 5, 1.0),
		result("carol", "301", 3, 3, 0.0),
		result("alice", "102", 5, 5, 0.5),
	}
	seed[0].Answers[0] = entity.Answer{UserRating: 0, ActualRating: 4.5, MovieTitle: "Parasite", TimedOut: true}

	for _, r := range seed {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if r.ID == 0 || r.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at to be assigned, got %+v", r)
		}
	}

	got, err := repo.FindByID(ctx, seed[0].ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.UserName != "alice" || got.TotalError != 2.0 || len(got.Answers) != 5 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if a := got.Answers[0]; !a.TimedOut || a.MovieTitle != "Parasite" || a.ActualRating != 4.5 {
		t.Fatalf("answers did not round trip: %+v", a)
	}

	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, repository.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}

	board, err := repo.Leaderboard(ctx, 5, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("expected 3 eligible results, got %d", len(board))
	}
	wantOrder := []int64{seed[3].ID, seed[1].ID, seed[0].ID}
	for i, id := range wantOrder {
		if board[i].ID != id {
			t.Fatalf("leaderboard position %d: want id %d, got %d", i, id, board[i].ID)
		}
	}

	top, err := repo.Leaderboard(ctx, 5, 1)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(top) != 1 || top[0].ID != seed[3].ID {
		t.Fatalf("expected limit to keep the leader only, got %+v", top)
	}

	mine, err := repo.FindByUser(ctx, "alice", "102")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != seed[3].ID {
		t.Fatalf("expected alice's results newest first, got %+v", mine)
	}

	none, err := repo.FindByUser(ctx, "alice", "999")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", none)
	}

	byName, err := repo.FindByUserName(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUserName failed: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("expected 2 results for alice, got %d", len(byName))
	}

	latest, err := repo.FindAll(ctx, 2)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(latest) != 2 || latest[0].ID != seed[3].ID {
		t.Fatalf("expected the 2 latest results, got %+v", latest)
	}

	stats, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalQuizzes != 4 || stats.AvgScore != 4 || stats.AvgTotalError != 0.875 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestSQLiteResultRepository(t *testing.T) {
	exerciseResultRepository(t, newSQLiteRepo(t))
}

func TestMemResultRepository(t *testing.T) {
	exerciseResultRepository(t, repository.NewMemResultRepository(zap.NewNop()))
}

func TestStatisticsOnEmptyStore(t *testing.T) {
	for name, repo := range map[string]repository.ResultRepository{
		"sqlite": newSQLiteRepo(t),
		"memory": repository.NewMemResultRepository(zap.NewNop()),
	} {
		stats, err := repo.Statistics(context.Background())
		if err != nil {
			t.Fatalf("%s: Statistics failed: %v", name, err)
		}
		if stats.TotalQuizzes != 0 || stats.AvgScore != 0 || stats.AvgTotalError != 0 {
			t.Fatalf("%s: expected zeroed statistics, got %+v", name, stats)
		}
	}
}

func TestLeaderboardTieKeepsInsertionOrder(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first := result("dan", "1", 3, 5, 1.5)
	second := result("erin", "2", 3, 5, 1.5)
	for _, r := range []*entity.QuizResult{first, second} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	board, err := repo.Leaderboard(ctx, 5, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 2 || board[0].UserName != "dan" || board[1].UserName != "erin" {
		t.Fatalf("expected insertion order on ties, got %+v", board)
	}
}

func TestSQLiteResultRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	r := result("frank", "5", 5, 5, 0.1)
	if err := repository.NewSQLiteResultRepository(db, zap.NewNop()).Create(ctx, r); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_ = db.Close()

	db, err = database.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	got, err := repository.NewSQLiteResultRepository(db, zap.NewNop()).FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID after reopen failed: %v", err)
	}
	if got.UserName != "frank" || !got.CreatedAt.Equal(r.CreatedAt) {
		t.Fatalf("unexpected result after reopen: %+v (want created_at %v)", got, r.CreatedAt)
	}
}
