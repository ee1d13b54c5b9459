package quiz

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrMissingUserInfo   = errors.New("user name and dorm are required")
	ErrNoMovies          = errors.New("no movies to play")
	ErrRatingOutOfRange  = errors.New("rating must be between 0.0 and 5.0")
	ErrQuizNotFinished   = errors.New("quiz is not finished")
)
