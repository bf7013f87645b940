package availability_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRules       = "некорректные правила доступности"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/resources/{resourceId}/availability-rules
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability-rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	result, err := h.service.GetRules(r.Context(), resourceID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /resources/{id}/availability-rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		h.logger.Error("GET /resources/{id}/availability-rules - Failed to get rules: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{id}/availability-rules - Rules retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/resources/{resourceId}/availability-rules
// Заменяет набор правил ресурса целиком
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/availability-rules - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req models.ReplaceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/availability-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ResourceID = resourceID

	result, err := h.service.ReplaceRules(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /resources/{id}/availability-rules - Invalid rules: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidRules+": "+err.Error())
			return
		}
		h.logger.Error("PUT /resources/{id}/availability-rules - Failed to replace rules: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /resources/{id}/availability-rules - Rules replaced successfully: resource_id=%d, count=%d",
		resourceID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
