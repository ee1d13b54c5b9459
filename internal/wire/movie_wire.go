package wire

import (
	"movie-quiz/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// GET /movies.json - catalog at the path the browser client fetches
	r.Get("/movies.json", movieHandler.ListMovies)

	// GET /api/movies - same catalog under the API prefix
	r.Get("/api/movies", movieHandler.ListMovies)
}
