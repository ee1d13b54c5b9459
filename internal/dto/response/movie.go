package response

import "movie-quiz/internal/data/entity"

type ReviewResponse struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

type MovieResponse struct {
	Title   string           `json:"title"`
	Poster  string           `json:"poster"`
	Rating  float64          `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

// MovieListResponse matches the layout of movies.json.
type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

// Helper converters
func MovieToResponse(movie entity.Movie) MovieResponse {
	reviews := make([]ReviewResponse, 0, len(movie.Reviews))
	for _, r := range movie.Reviews {
		reviews = append(reviews, ReviewResponse(r))
	}
	return MovieResponse{
		Title:   movie.Title,
		Poster:  movie.Poster,
		Rating:  movie.Rating,
		Reviews: reviews,
	}
}

func NewMovieListResponse(movies []entity.Movie) MovieListResponse {
	items := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		items = append(items, MovieToResponse(m))
	}
	return MovieListResponse{Movies: items}
}
