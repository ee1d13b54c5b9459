package response

import (
	"time"

	"movie-quiz/internal/data/entity"
)

type StatisticsResponse struct {
	Success           bool    `json:"success"`
	TotalQuizzes      int64   `json:"totalQuizzes"`
	AvgScore          float64 `json:"avgScore"`
	AvgTotalQuestions float64 `json:"avgTotalQuestions"`
	AvgTotalError     float64 `json:"avgTotalError"`
}

func StatisticsToResponse(stats *entity.Statistics) StatisticsResponse {
	return StatisticsResponse{
		Success:           true,
		TotalQuizzes:      stats.TotalQuizzes,
		AvgScore:          stats.AvgScore,
		AvgTotalQuestions: stats.AvgTotalQuestions,
		AvgTotalError:     stats.AvgTotalError,
	}
}

type RecentGame struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Accuracy       string `json:"accuracy"`
	TotalError     string `json:"totalError"`
	PlayedAt       string `json:"playedAt"`
}

type UserStats struct {
	UserName        string       `json:"userName"`
	TotalGames      int          `json:"totalGames"`
	TotalScore      int          `json:"totalScore"`
	TotalQuestions  int          `json:"totalQuestions"`
	AverageAccuracy string       `json:"averageAccuracy"`
	TotalError      string       `json:"totalError"`
	RecentGames     []RecentGame `json:"recentGames"`
	BestScore       int          `json:"bestScore"`
	LastPlayed      string       `json:"lastPlayed"`
}

type UserStatsResponse struct {
	Success   bool      `json:"success"`
	UserStats UserStats `json:"userStats"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Storage     string    `json:"storage"`
	Cache       bool      `json:"cache"`
}
