// Package play runs the movie quiz in a terminal against a quiz server.
package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"movie-quiz/internal/client"
	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/dto/response"
	"movie-quiz/internal/quiz"

	"go.uber.org/zap"
)

// API is the part of the quiz server the player needs.
type API interface {
	Movies(ctx context.Context) ([]entity.Movie, error)
	SaveResult(ctx context.Context, result entity.QuizResult) (*response.SaveResultResponse, error)
	Leaderboard(ctx context.Context) (*response.LeaderboardResponse, error)
}

// ErrInputClosed is returned when stdin ends mid-game.
var ErrInputClosed = errors.New("input closed")

type App struct {
	api       API
	out       io.Writer
	timeLimit time.Duration
	serverURL string
	log       *zap.Logger

	lines <-chan string
}

func NewApp(api API, out io.Writer, timeLimit time.Duration, serverURL string, log *zap.Logger) *App {
	return &App{
		api:       api,
		out:       out,
		timeLimit: timeLimit,
		serverURL: serverURL,
		log:       log.With(zap.String("component", "play")),
	}
}

// Run plays until the user quits or in is exhausted.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.lines = readLines(ctx, in)

	movies, err := a.api.Movies(ctx)
	if err != nil {
		a.alert(err)
		return err
	}

	session := quiz.NewSession(movies, a.timeLimit)
	a.log.Debug("Session created", zap.String("session_id", session.ID.String()), zap.Int("movies", len(movies)))

	fmt.Fprintln(a.out, "=== Movie Rating Quiz ===")
	fmt.Fprintf(a.out, "Guess each movie's rating from 0.0 to 5.0. You have %s per movie and\n", a.timeLimit.Round(time.Second))
	fmt.Fprintf(a.out, "a guess within %.1f of the real rating counts as correct.\n\n", quiz.Tolerance)

	if err := a.askUser(ctx, session); err != nil {
		return err
	}

	for {
		switch session.Screen() {
		case quiz.ScreenStart:
			choice, err := a.menu(ctx, "[s]tart quiz, [l]eaderboard, [q]uit")
			if err != nil {
				return err
			}
			switch choice {
			case "s", "start", "":
				if err := session.Start(); err != nil {
					fmt.Fprintf(a.out, "Cannot start: %v\n", err)
					return err
				}
			case "l", "leaderboard":
				if err := session.ShowLeaderboard(); err != nil {
					return err
				}
			case "q", "quit":
				return nil
			default:
				fmt.Fprintln(a.out, "Please choose s, l or q.")
			}

		case quiz.ScreenQuiz:
			if err := a.askMovie(ctx, session); err != nil {
				return err
			}

		case quiz.ScreenResult:
			if err := session.Next(); err != nil {
				return err
			}

		case quiz.ScreenFinal:
			a.finish(ctx, session)
			choice, err := a.menu(ctx, "[l]eaderboard, [r]estart, [q]uit")
			if err != nil {
				return err
			}
			switch choice {
			case "l", "leaderboard":
				if err := session.ShowLeaderboard(); err != nil {
					return err
				}
			case "q", "quit":
				return nil
			default:
				if err := session.BackToStart(); err != nil {
					return err
				}
			}

		case quiz.ScreenLeaderboard:
			a.showLeaderboard(ctx)
			if err := session.BackToStart(); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unexpected screen %s", session.Screen())
		}
	}
}

func (a *App) askUser(ctx context.Context, session *quiz.Session) error {
	for {
		name, err := a.prompt(ctx, "Name: ")
		if err != nil {
			return err
		}
		dorm, err := a.prompt(ctx, "Dorm: ")
		if err != nil {
			return err
		}

		err = session.SetUser(name, dorm)
		if errors.Is(err, quiz.ErrMissingUserInfo) {
			fmt.Fprintln(a.out, "Please enter both your name and dorm number.")
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "\nWelcome, %s (%s)!\n\n", session.UserName(), session.UserDorm())
		return nil
	}
}

func (a *App) askMovie(ctx context.Context, session *quiz.Session) error {
	movie, err := session.Current()
	if err != nil {
		return err
	}
	pos, total := session.Progress()

	fmt.Fprintf(a.out, "\n--- Movie %d/%d: %s ---\n", pos, total, movie.Title)
	for _, r := range movie.Reviews {
		fmt.Fprintf(a.out, "  %q - %s\n", r.Text, r.Author)
	}

	timer := time.NewTimer(session.Remaining())
	defer timer.Stop()

	for {
		fmt.Fprintf(a.out, "Your rating (%ds left): ", int(session.Remaining().Round(time.Second).Seconds()))

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			out, err := session.Timeout()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "\nTime is up!")
			a.showOutcome(out)
			return nil

		case line, ok := <-a.lines:
			if !ok {
				return ErrInputClosed
			}
			rating, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
			if err != nil || !quiz.ValidRating(rating) {
				fmt.Fprintf(a.out, "Please enter a number from %.1f to %.1f.\n", quiz.MinRating, quiz.MaxRating)
				continue
			}

			out, err := session.Submit(rating)
			if err != nil {
				return err
			}
			if out.Answer.TimedOut {
				fmt.Fprintln(a.out, "Time is up!")
			}
			a.showOutcome(out)
			return nil
		}
	}
}

func (a *App) showOutcome(out quiz.Outcome) {
	verdict := "Wrong"
	if out.Correct {
		verdict = "Correct"
	}
	fmt.Fprintf(a.out, "%s! You said %.1f, the rating is %.1f (off by %.2f).\n",
		verdict, out.Answer.UserRating, out.Answer.ActualRating,
		quiz.AbsError(out.Answer.UserRating, out.Answer.ActualRating))
	fmt.Fprintf(a.out, "Score %d/%d, total error %.2f\n", out.Score, out.Answered, out.TotalError)
}

func (a *App) finish(ctx context.Context, session *quiz.Session) {
	result, err := session.Result()
	if err != nil {
		fmt.Fprintf(a.out, "Cannot build result: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\n=== Quiz finished ===")
	fmt.Fprintf(a.out, "Score: %d/%d (%s%%)\n", result.Score, result.TotalQuestions,
		response.FormatAccuracy(result.Score, result.TotalQuestions))
	fmt.Fprintf(a.out, "Total error: %s\n", response.FormatError(result.TotalError))

	saved, err := a.api.SaveResult(ctx, result)
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Result saved (ID: %d)\n\n", saved.ID)
}

func (a *App) showLeaderboard(ctx context.Context) {
	board, err := a.api.Leaderboard(ctx)
	if err != nil {
		a.alert(err)
		return
	}

	fmt.Fprintln(a.out, "\n=== Leaderboard ===")
	if len(board.Leaderboard) == 0 {
		fmt.Fprintln(a.out, "No results yet. Finish a quiz to get on the board!")
		return
	}
	fmt.Fprintf(a.out, "%-4s %-16s %-8s %-7s %-9s %-7s %s\n", "#", "Name", "Dorm", "Score", "Accuracy", "Error", "Played")
	for _, e := range board.Leaderboard {
		fmt.Fprintf(a.out, "%-4d %-16s %-8s %-7s %-9s %-7s %s\n",
			e.Rank, e.UserName, e.UserDorm,
			fmt.Sprintf("%d/%d", e.Score, e.TotalQuestions),
			e.Accuracy+"%", e.TotalError, e.PlayedAt)
	}
	fmt.Fprintln(a.out)
}

// alert prints a failure once together with what the user can do about it.
func (a *App) alert(err error) {
	a.log.Warn("Server request failed", zap.Error(err))

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrServiceUnavailable):
		fmt.Fprintf(a.out, "\n!! Cannot reach the quiz server at %s.\n", a.serverURL)
		fmt.Fprintln(a.out, "   How to fix:")
		fmt.Fprintln(a.out, "   1. Check the server is running: movie-quiz serve")
		fmt.Fprintln(a.out, "   2. Check it listens on the expected port (default 3001, see --server)")
		fmt.Fprintln(a.out, "   3. Check firewall or network settings")
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "\n!! Server error %d: %s\n", apiErr.StatusCode, apiErr.Error())
	default:
		fmt.Fprintf(a.out, "\n!! %v\n", err)
	}
	fmt.Fprintf(a.out, "   Details: %v\n\n", err)
}

func (a *App) menu(ctx context.Context, options string) (string, error) {
	line, err := a.prompt(ctx, options+": ")
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func (a *App) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(a.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
