package adaptor

import (
	"net/http"
	"time"

	"movie-quiz/internal/dto/response"
	"movie-quiz/pkg/utils"
)

type HealthHandler struct {
	environment string
	storage     string
	cached      bool
	now         func() time.Time
}

func NewHealthHandler(environment, storage string, cached bool) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		storage:     storage,
		cached:      cached,
		now:         time.Now,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, response.HealthResponse{
		Status:      "OK",
		Timestamp:   h.now().UTC(),
		Environment: h.environment,
		Storage:     h.storage,
		Cache:       h.cached,
	})
}
