package wire

import (
	"movie-quiz/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStats(r chi.Router, leaderboardHandler *adaptor.LeaderboardHandler, statsHandler *adaptor.StatsHandler) {
	// GET /api/leaderboard - top ranked results
	r.Get("/api/leaderboard", leaderboardHandler.GetLeaderboard)

	// GET /api/statistics - averages over every result
	r.Get("/api/statistics", statsHandler.GetStatistics)

	// GET /api/user-stats/{userName} - one player's aggregates
	r.Get("/api/user-stats/{userName}", statsHandler.GetUserStats)
}
