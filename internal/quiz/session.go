package quiz

import (
	"fmt"
	"strings"
	"time"

	"movie-quiz/internal/data/entity"

	"github.com/google/uuid"
)

// DefaultTimeLimit is the countdown per movie.
const DefaultTimeLimit = 15 * time.Second

// Screen is a state of the quiz flow.
type Screen int

const (
	ScreenUserInfo Screen = iota
	ScreenStart
	ScreenQuiz
	ScreenResult
	ScreenFinal
	ScreenLeaderboard
)

func (s Screen) String() string {
	switch s {
	case ScreenUserInfo:
		return "user_info"
	case ScreenStart:
		return "start"
	case ScreenQuiz:
		return "quiz"
	case ScreenResult:
		return "result"
	case ScreenFinal:
		return "final"
	case ScreenLeaderboard:
		return "leaderboard"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// Outcome describes the answer just recorded.
type Outcome struct {
	Answer     entity.Answer
	Correct    bool
	Score      int
	Answered   int
	TotalError float64
	Last       bool
}

// Session is one player's run through the movie list:
//
//	UserInfo -> Start -> Quiz -> Result -> (Quiz | Final) -> Leaderboard
//
// Start and Final may also open the leaderboard, and Final and Leaderboard
// lead back to Start. A Session is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	movies    []entity.Movie
	timeLimit time.Duration
	now       func() time.Time

	screen   Screen
	userName string
	userDorm string

	index    int
	score    int
	answers  []entity.Answer
	deadline time.Time
}

// NewSession creates a session over movies with the given countdown per
// movie; a non-positive limit uses DefaultTimeLimit.
func NewSession(movies []entity.Movie, timeLimit time.Duration) *Session {
	return NewSessionWithClock(movies, timeLimit, time.Now)
}

// NewSessionWithClock allows deterministic timers in tests.
func NewSessionWithClock(movies []entity.Movie, timeLimit time.Duration, now func() time.Time) *Session {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &Session{
		ID:        uuid.New(),
		movies:    movies,
		timeLimit: timeLimit,
		now:       now,
		screen:    ScreenUserInfo,
	}
}

func (s *Session) Screen() Screen { return s.screen }

func (s *Session) UserName() string { return s.userName }

func (s *Session) UserDorm() string { return s.userDorm }

// Progress returns the 1-based position of the current movie and the total.
func (s *Session) Progress() (int, int) {
	return s.index + 1, len(s.movies)
}

// SetUser records who is playing and moves to the start screen.
func (s *Session) SetUser(name, dorm string) error {
	if err := s.expect(ScreenUserInfo); err != nil {
		return err
	}

	name, dorm = strings.TrimSpace(name), strings.TrimSpace(dorm)
	if name == "" || dorm == "" {
		return ErrMissingUserInfo
	}

	s.userName, s.userDorm = name, dorm
	s.screen = ScreenStart
	return nil
}

// Start resets the run and shows the first movie.
func (s *Session) Start() error {
	if err := s.expect(ScreenStart); err != nil {
		return err
	}
	if len(s.movies) == 0 {
		return ErrNoMovies
	}

	s.index = 0
	s.score = 0
	s.answers = nil
	s.showMovie()
	return nil
}

// Current returns the movie being asked.
func (s *Session) Current() (entity.Movie, error) {
	if s.screen != ScreenQuiz && s.screen != ScreenResult {
		return entity.Movie{}, fmt.Errorf("%w: no movie on %s screen", ErrInvalidTransition, s.screen)
	}
	return s.movies[s.index], nil
}

// Remaining is the time left on the current countdown.
func (s *Session) Remaining() time.Duration {
	if s.screen != ScreenQuiz {
		return 0
	}
	left := s.deadline.Sub(s.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown for the current movie has run out.
func (s *Session) Expired() bool {
	return s.screen == ScreenQuiz && !s.now().Before(s.deadline)
}

// Submit records a guess for the current movie. A guess arriving after the
// countdown ran out is recorded as a timeout.
func (s *Session) Submit(rating float64) (Outcome, error) {
	if err := s.expect(ScreenQuiz); err != nil {
		return Outcome{}, err
	}
	if !ValidRating(rating) {
		return Outcome{}, ErrRatingOutOfRange
	}
	if s.Expired() {
		return s.record(0, true), nil
	}
	return s.record(rating, false), nil
}

// Timeout records the forced incorrect answer with rating 0.
func (s *Session) Timeout() (Outcome, error) {
	if err := s.expect(ScreenQuiz); err != nil {
		return Outcome{}, err
	}
	return s.record(0, true), nil
}

// Next moves from a per-movie result to the next movie, or to the final
// screen after the last one.
func (s *Session) Next() error {
	if err := s.expect(ScreenResult); err != nil {
		return err
	}

	s.index++
	if s.index >= len(s.movies) {
		s.index = len(s.movies) - 1
		s.screen = ScreenFinal
		return nil
	}

	s.showMovie()
	return nil
}

// Score returns the correct count, answered count and accumulated error so far.
func (s *Session) Score() (int, int, float64) {
	return s.score, len(s.answers), TotalError(s.answers)
}

// Result builds the record to submit once the quiz is finished.
func (s *Session) Result() (entity.QuizResult, error) {
	if s.screen != ScreenFinal && s.screen != ScreenLeaderboard {
		return entity.QuizResult{}, ErrQuizNotFinished
	}

	answers := make([]entity.Answer, len(s.answers))
	copy(answers, s.answers)

	return entity.QuizResult{
		UserName:       s.userName,
		UserDorm:       s.userDorm,
		Score:          s.score,
		TotalQuestions: len(answers),
		TotalError:     TotalError(answers),
		Answers:        answers,
	}, nil
}

// ShowLeaderboard opens the leaderboard from the start or final screen.
func (s *Session) ShowLeaderboard() error {
	if err := s.expect(ScreenStart, ScreenFinal); err != nil {
		return err
	}
	s.screen = ScreenLeaderboard
	return nil
}

// BackToStart returns to the start screen keeping the user info.
func (s *Session) BackToStart() error {
	if err := s.expect(ScreenFinal, ScreenLeaderboard); err != nil {
		return err
	}
	s.screen = ScreenStart
	return nil
}

func (s *Session) showMovie() {
	s.screen = ScreenQuiz
	s.deadline = s.now().Add(s.timeLimit)
}

func (s *Session) record(rating float64, timedOut bool) Outcome {
	movie := s.movies[s.index]
	answer := entity.Answer{
		UserRating:   rating,
		ActualRating: movie.Rating,
		MovieTitle:   movie.Title,
		TimedOut:     timedOut,
	}

	correct := !timedOut && IsCorrect(rating, movie.Rating)
	if correct {
		s.score++
	}
	s.answers = append(s.answers, answer)
	s.screen = ScreenResult

	return Outcome{
		Answer:     answer,
		Correct:    correct,
		Score:      s.score,
		Answered:   len(s.answers),
		TotalError: TotalError(s.answers),
		Last:       s.index == len(s.movies)-1,
	}
}

func (s *Session) expect(screens ...Screen) error {
	for _, sc := range screens {
		if s.screen == sc {
			return nil
		}
	}
	return fmt.Errorf("%w: on %s screen", ErrInvalidTransition, s.screen)
}
