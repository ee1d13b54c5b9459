package response

import (
	"time"

	"movie-quiz/internal/data/entity"
)

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserName       string `json:"userName"`
	UserDorm       string `json:"userDorm"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Accuracy       string `json:"accuracy"`
	TotalError     string `json:"totalError"`
	PlayedAt       string `json:"playedAt"`
}

type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Count       int                `json:"count"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

// NewLeaderboardResponse numbers ranked results from 1 in the order given.
func NewLeaderboardResponse(ranked []*entity.QuizResult, now time.Time) LeaderboardResponse {
	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, r := range ranked {
		entries = append(entries, LeaderboardEntry{
			Rank:           i + 1,
			UserName:       r.UserName,
			UserDorm:       r.UserDorm,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Accuracy:       FormatAccuracy(r.Score, r.TotalQuestions),
			TotalError:     FormatError(r.TotalError),
			PlayedAt:       r.CreatedAt.Format(PlayedAtLayout),
		})
	}

	return LeaderboardResponse{
		Success:     true,
		Count:       len(entries),
		Leaderboard: entries,
		LastUpdated: now.UTC(),
	}
}
