package quiz_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/quiz"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sampleMovies() []entity.Movie {
	return []entity.Movie{
		{Title: "Parasite", Rating: 4.0, Reviews: []entity.Review{{Author: "a", Text: "great"}}},
		{Title: "Cats", Rating: 3.5},
	}
}

func newTestSession(t *testing.T) (*quiz.Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	s := quiz.NewSessionWithClock(sampleMovies(), 15*time.Second, clock.now)
	if err := s.SetUser(" Kim ", " 102 "); err != nil {
		t.Fatalf("set user: %v", err)
	}
	return s, clock
}

func TestSessionFullRun(t *testing.T) {
	s, _ := newTestSession(t)
	if s.UserName() != "Kim" || s.UserDorm() != "102" {
		t.Fatalf("expected trimmed user info, got %q %q", s.UserName(), s.UserDorm())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Screen() != quiz.ScreenQuiz {
		t.Fatalf("expected quiz screen, got %s", s.Screen())
	}

	movie, err := s.Current()
	if err != nil || movie.Title != "Parasite" {
		t.Fatalf("expected first movie, got %+v (%v)", movie, err)
	}

	out, err := s.Submit(4.0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.Correct || out.Score != 1 || out.Last {
		t.Fatalf("unexpected first outcome %+v", out)
	}
	if s.Screen() != quiz.ScreenResult {
		t.Fatalf("expected result screen, got %s", s.Screen())
	}

	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	out, err = s.Submit(3.0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Correct || !out.Last || out.Answered != 2 {
		t.Fatalf("unexpected second outcome %+v", out)
	}

	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if s.Screen() != quiz.ScreenFinal {
		t.Fatalf("expected final screen, got %s", s.Screen())
	}

	res, err := s.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Score != 1 || res.TotalQuestions != 2 || math.Abs(res.TotalError-0.5) > 1e-12 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.UserName != "Kim" || len(res.Answers) != 2 {
		t.Fatalf("unexpected result identity %+v", res)
	}

	if err := s.ShowLeaderboard(); err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if err := s.BackToStart(); err != nil {
		t.Fatalf("back to start: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if score, answered, _ := s.Score(); score != 0 || answered != 0 {
		t.Fatalf("expected reset on restart, got score=%d answered=%d", score, answered)
	}
}

func TestSessionTimeoutForcesIncorrectZero(t *testing.T) {
	s, clock := newTestSession(t)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	clock.advance(5 * time.Second)
	if got := s.Remaining(); got != 10*time.Second {
		t.Fatalf("expected 10s remaining, got %v", got)
	}

	out, err := s.Timeout()
	if err != nil {
		t.Fatalf("timeout: %v", err)
	}
	if out.Correct || !out.Answer.TimedOut || out.Answer.UserRating != 0 {
		t.Fatalf("expected forced incorrect zero answer, got %+v", out)
	}
	if math.Abs(out.TotalError-4.0) > 1e-12 {
		t.Fatalf("expected error 4.0, got %v", out.TotalError)
	}
}

func TestSessionLateSubmitCountsAsTimeout(t *testing.T) {
	s, clock := newTestSession(t)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	clock.advance(16 * time.Second)
	if !s.Expired() {
		t.Fatalf("expected countdown to be expired")
	}

	out, err := s.Submit(4.0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Correct || !out.Answer.TimedOut {
		t.Fatalf("expected late answer to time out, got %+v", out)
	}
}

func TestSessionRejectsOutOfRangeRating(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := s.Submit(5.5); !errors.Is(err, quiz.ErrRatingOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if s.Screen() != quiz.ScreenQuiz {
		t.Fatalf("rejected rating must keep the quiz screen, got %s", s.Screen())
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := quiz.NewSession(sampleMovies(), 0)

	if err := s.Start(); !errors.Is(err, quiz.ErrInvalidTransition) {
		t.Fatalf("expected start before user info to fail, got %v", err)
	}
	if err := s.SetUser("", "102"); !errors.Is(err, quiz.ErrMissingUserInfo) {
		t.Fatalf("expected missing user info, got %v", err)
	}
	if err := s.SetUser("Kim", "102"); err != nil {
		t.Fatalf("set user: %v", err)
	}
	if _, err := s.Submit(3); !errors.Is(err, quiz.ErrInvalidTransition) {
		t.Fatalf("expected submit before start to fail, got %v", err)
	}
	if err := s.Next(); !errors.Is(err, quiz.ErrInvalidTransition) {
		t.Fatalf("expected next before start to fail, got %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, quiz.ErrQuizNotFinished) {
		t.Fatalf("expected unfinished quiz, got %v", err)
	}
}

func TestSessionNoMovies(t *testing.T) {
	s := quiz.NewSession(nil, time.Second)
	if err := s.SetUser("Kim", "102"); err != nil {
		t.Fatalf("set user: %v", err)
	}
	if err := s.Start(); !errors.Is(err, quiz.ErrNoMovies) {
		t.Fatalf("expected no movies error, got %v", err)
	}
}

func TestSessionTimeoutsCountAsQuestions(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < len(sampleMovies()); i++ {
		if _, err := s.Timeout(); err != nil {
			t.Fatalf("timeout %d: %v", i, err)
		}
		if err := s.Next(); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	result, err := s.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.TotalQuestions != 2 || result.Score != 0 || len(result.Answers) != 2 {
		t.Fatalf("expected both timeouts recorded as questions, got %+v", result)
	}
	if math.Abs(result.TotalError-7.5) > 1e-12 {
		t.Fatalf("expected error 7.5, got %v", result.TotalError)
	}
}
