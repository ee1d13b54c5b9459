package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-quiz/internal/dto/request"
	"movie-quiz/internal/usecase"
	"movie-quiz/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxResultBody = 1 << 20

type ResultHandler struct {
	service usecase.ResultService
	log     *zap.Logger
}

func NewResultHandler(service usecase.ResultService, log *zap.Logger) *ResultHandler {
	return &ResultHandler{
		service: service,
		log:     log.With(zap.String("handler", "result")),
	}
}

// SaveResult handles POST /api/save-result
func (h *ResultHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResultBody)

	var req request.SaveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid save result body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Save result validation failed", zap.Any("errors", validationErrors))
		message := "Invalid result fields"
		if utils.HasMissingField(validationErrors) {
			message = "All fields are required"
		}
		utils.ResponseBadRequest(w, message, validationErrors)
		return
	}

	resp, err := h.service.SaveResult(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "save result")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// ListResults handles GET /api/results?limit=N
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), usecase.ResultListLimit)

	resp, err := h.service.ListResults(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err, "list results")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// GetUserResults handles GET /api/results/{name}/{dorm}
func (h *ResultHandler) GetUserResults(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	dorm := chi.URLParam(r, "dorm")

	resp, err := h.service.GetUserResults(r.Context(), name, dorm)
	if err != nil {
		h.handleServiceError(w, err, "get user results")
		return
	}

	utils.ResponseSuccess(w, resp)
}

func (h *ResultHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidResult):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Failed to "+operation, err)
	}
}
