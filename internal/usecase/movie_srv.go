package usecase

import (
	"context"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/dto/response"

	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context) *response.MovieListResponse
}

type movieService struct {
	movies response.MovieListResponse
	log    *zap.Logger
}

// NewMovieService serves a catalog loaded once at startup.
func NewMovieService(movies []entity.Movie, log *zap.Logger) MovieService {
	s := &movieService{
		movies: response.NewMovieListResponse(movies),
		log:    log.With(zap.String("service", "movie")),
	}
	s.log.Info("Movie catalog ready", zap.Int("movies", len(movies)))
	return s
}

func (s *movieService) ListMovies(ctx context.Context) *response.MovieListResponse {
	return &s.movies
}
