package adaptor

import (
	"net/http"

	"movie-quiz/internal/usecase"
	"movie-quiz/pkg/utils"

	"go.uber.org/zap"
)

type LeaderboardHandler struct {
	service usecase.LeaderboardService
	log     *zap.Logger
}

func NewLeaderboardHandler(service usecase.LeaderboardService, log *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "leaderboard")),
	}
}

// GetLeaderboard handles GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetLeaderboard(r.Context())
	if err != nil {
		h.log.Error("Failed to get leaderboard", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to get leaderboard", err)
		return
	}

	utils.ResponseSuccess(w, resp)
}
