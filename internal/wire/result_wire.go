package wire

import (
	"movie-quiz/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireResult(r chi.Router, resultHandler *adaptor.ResultHandler) {
	// POST /api/save-result - store a finished quiz run
	r.Post("/api/save-result", resultHandler.SaveResult)

	// GET /api/results - latest results
	r.Get("/api/results", resultHandler.ListResults)

	// GET /api/results/{name}/{dorm} - one player's results
	r.Get("/api/results/{name}/{dorm}", resultHandler.GetUserResults)
}
