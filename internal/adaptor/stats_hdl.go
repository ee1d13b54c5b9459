package adaptor

import (
	"errors"
	"net/http"

	"movie-quiz/internal/usecase"
	"movie-quiz/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// GetStatistics handles GET /api/statistics
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetStatistics(r.Context())
	if err != nil {
		h.log.Error("Failed to get statistics", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to get statistics", err)
		return
	}

	utils.ResponseSuccess(w, resp)
}

// GetUserStats handles GET /api/user-stats/{userName}
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")

	resp, err := h.service.GetUserStats(r.Context(), userName)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		h.log.Warn("User stats not found", zap.String("user_name", userName))
		utils.ResponseNotFound(w, "User not found")
		return
	case err != nil:
		h.log.Error("Failed to get user stats", zap.Error(err), zap.String("user_name", userName))
		utils.ResponseInternalError(w, "Failed to get user stats", err)
		return
	}

	utils.ResponseSuccess(w, resp)
}
