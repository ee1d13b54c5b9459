package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/data/repository"
	"movie-quiz/internal/wire"
	"movie-quiz/pkg/utils"

	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App:         utils.AppConfig{Env: "test"},
		Quiz:        utils.QuizConfig{LeaderboardSize: 10, LeaderboardMinQuestions: 5},
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

func newServer(t *testing.T, results repository.ResultRepository) *httptest.Server {
	t.Helper()
	repo := repository.NewRepository(results, utils.DriverMemory)
	movies := []entity.Movie{
		{Title: "Parasite", Poster: "p.jpg", Rating: 4.6, Reviews: []entity.Review{{Author: "kim", Text: "great"}}},
	}
	app := wire.Wiring(repo, movies, testConfig(), zap.NewNop())
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func resultBody(name string, score, total int, totalError float64) string {
	answers := make([]map[string]any, 0, total)
	for i := 0; i < total; i++ {
		answers = append(answers, map[string]any{"userRating": 3.0, "actualRating": 3.1, "movieTitle": "Parasite"})
	}
	raw, _ := json.Marshal(map[string]any{
		"userName":       name,
		"userDorm":       "102",
		"score":          score,
		"totalQuestions": total,
		"totalError":     totalError,
		"answers":        answers,
	})
	return string(raw)
}

func TestSaveResultThenLeaderboard(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	for _, body := range []string{
		resultBody("alice", 4, 5, 2.0),
		resultBody("bob", 4, 5, 1.0),
		resultBody("carol", 2, 2, 0),
	} {
		resp := post(t, srv.URL+"/api/save-result", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("save-result status = %d", resp.StatusCode)
		}
		var saved struct {
			Success bool  `json:"success"`
			ID      int64 `json:"id"`
		}
		decode(t, resp, &saved)
		if !saved.Success || saved.ID == 0 {
			t.Fatalf("unexpected save response: %+v", saved)
		}
	}

	resp := get(t, srv.URL+"/api/leaderboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status = %d", resp.StatusCode)
	}
	var board struct {
		Success     bool `json:"success"`
		Count       int  `json:"count"`
		Leaderboard []struct {
			Rank       int    `json:"rank"`
			UserName   string `json:"userName"`
			Accuracy   string `json:"accuracy"`
			TotalError string `json:"totalError"`
		} `json:"leaderboard"`
		LastUpdated string `json:"lastUpdated"`
	}
	decode(t, resp, &board)
	if board.Count != 2 || board.Leaderboard[0].UserName != "bob" || board.Leaderboard[0].Rank != 1 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}
	if board.Leaderboard[0].Accuracy != "80.0" || board.Leaderboard[1].TotalError != "2.00" || board.LastUpdated == "" {
		t.Fatalf("unexpected formatting: %+v", board)
	}
}

func TestSaveResultMissingFields(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	cases := map[string]string{
		"missing score":   `{"userName":"kim","userDorm":"102","totalQuestions":5,"totalError":1,"answers":[]}`,
		"missing answers": `{"userName":"kim","userDorm":"102","score":1,"totalQuestions":5,"totalError":1}`,
		"empty name":      `{"userName":"","userDorm":"102","score":1,"totalQuestions":5,"totalError":1,"answers":[]}`,
		"bad rating":      `{"userName":"kim","userDorm":"102","score":1,"totalQuestions":1,"totalError":1,"answers":[{"userRating":7,"actualRating":3,"movieTitle":"A"}]}`,
		"not json":        `{"userName":`,
	}
	for name, body := range cases {
		resp := post(t, srv.URL+"/api/save-result", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, resp.StatusCode)
		}
		var errBody utils.ErrorResponse
		decode(t, resp, &errBody)
		if errBody.Error == "" {
			t.Fatalf("%s: expected an error message", name)
		}
	}
}

func TestSaveResultValidationMessages(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	cases := map[string]struct {
		body    string
		message string
		field   string
	}{
		"missing score": {
			body:    `{"userName":"kim","userDorm":"102","totalQuestions":1,"totalError":1,"answers":[{"userRating":3,"actualRating":3,"movieTitle":"A"}]}`,
			message: "All fields are required",
			field:   "score",
		},
		"rating out of range": {
			body:    `{"userName":"kim","userDorm":"102","score":1,"totalQuestions":1,"totalError":1,"answers":[{"userRating":7,"actualRating":3,"movieTitle":"A"}]}`,
			message: "Invalid result fields",
			field:   "answers[0].userRating",
		},
	}
	for name, tc := range cases {
		resp := post(t, srv.URL+"/api/save-result", tc.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, resp.StatusCode)
		}
		var errBody struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		decode(t, resp, &errBody)
		if errBody.Error != tc.message {
			t.Fatalf("%s: error = %q, want %q", name, errBody.Error, tc.message)
		}
		if _, ok := errBody.Details[tc.field]; !ok {
			t.Fatalf("%s: expected details for %s, got %v", name, tc.field, errBody.Details)
		}
	}
}

func TestSaveResultAcceptsZeroScore(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	resp := post(t, srv.URL+"/api/save-result", resultBody("kim", 0, 5, 0))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMoviesAndHealth(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	for _, path := range []string{"/movies.json", "/api/movies"} {
		resp := get(t, srv.URL+path)
		var body struct {
			Movies []struct {
				Title   string `json:"title"`
				Reviews []struct {
					Author string `json:"author"`
				} `json:"reviews"`
			} `json:"movies"`
		}
		decode(t, resp, &body)
		if len(body.Movies) != 1 || body.Movies[0].Reviews[0].Author != "kim" {
			t.Fatalf("%s: unexpected movies %+v", path, body)
		}
	}

	resp := get(t, srv.URL+"/health")
	var health struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Storage     string `json:"storage"`
		Timestamp   string `json:"timestamp"`
	}
	decode(t, resp, &health)
	if health.Status != "OK" || health.Environment != "test" || health.Storage != "memory" || health.Timestamp == "" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestResultsAndUserStats(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	for _, body := range []string{resultBody("kim", 3, 5, 1.5), resultBody("kim", 5, 5, 0.5)} {
		post(t, srv.URL+"/api/save-result", body).Body.Close()
	}

	var list struct {
		Count   int `json:"count"`
		Results []struct {
			UserName string `json:"userName"`
			Answers  []any  `json:"answers"`
		} `json:"results"`
	}
	decode(t, get(t, srv.URL+"/api/results/kim/102"), &list)
	if list.Count != 2 || len(list.Results[0].Answers) != 5 {
		t.Fatalf("unexpected user results: %+v", list)
	}

	decode(t, get(t, srv.URL+"/api/results"), &list)
	if list.Count != 2 {
		t.Fatalf("unexpected results: %+v", list)
	}

	decode(t, get(t, srv.URL+"/api/results?limit=1"), &list)
	if list.Count != 1 {
		t.Fatalf("limit=1 returned %d results", list.Count)
	}

	var stats struct {
		UserStats struct {
			TotalGames      int    `json:"totalGames"`
			AverageAccuracy string `json:"averageAccuracy"`
			BestScore       int    `json:"bestScore"`
		} `json:"userStats"`
	}
	decode(t, get(t, srv.URL+"/api/user-stats/kim"), &stats)
	if stats.UserStats.TotalGames != 2 || stats.UserStats.AverageAccuracy != "80.0" || stats.UserStats.BestScore != 5 {
		t.Fatalf("unexpected user stats: %+v", stats)
	}

	resp := get(t, srv.URL+"/api/user-stats/nobody")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	var global struct {
		TotalQuizzes int64   `json:"totalQuizzes"`
		AvgScore     float64 `json:"avgScore"`
	}
	decode(t, get(t, srv.URL+"/api/statistics"), &global)
	if global.TotalQuizzes != 2 || global.AvgScore != 4 {
		t.Fatalf("unexpected statistics: %+v", global)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	resp := get(t, srv.URL+"/api/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route status = %d, want 404", resp.StatusCode)
	}
	var errBody utils.ErrorResponse
	decode(t, resp, &errBody)
	if errBody.Error == "" {
		t.Fatalf("expected a JSON error body")
	}

	resp = get(t, srv.URL+"/api/save-result")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method status = %d, want 405", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	srv := newServer(t, repository.NewMemResultRepository(zap.NewNop()))

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/save-result", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

type failingRepo struct {
	repository.ResultRepository
}

var errStoreDown = errors.New("store is down")

func (failingRepo) Create(context.Context, *entity.QuizResult) error { return errStoreDown }

func (failingRepo) Leaderboard(context.Context, int, int) ([]*entity.QuizResult, error) {
	return nil, errStoreDown
}

func TestPersistenceFailureReturns500(t *testing.T) {
	srv := newServer(t, failingRepo{repository.NewMemResultRepository(zap.NewNop())})

	resp, err := http.Post(srv.URL+"/api/save-result", "application/json", bytes.NewBufferString(resultBody("kim", 1, 5, 1)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var errBody utils.ErrorResponse
	decode(t, resp, &errBody)
	if !strings.Contains(errBody.Message, "store is down") {
		t.Fatalf("expected the cause to be passed through, got %+v", errBody)
	}

	resp = get(t, srv.URL+"/api/leaderboard")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("leaderboard status = %d, want 500", resp.StatusCode)
	}
	resp.Body.Close()
}
