package stay_constraints

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConstraints = "некорректные условия проживания"
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

// HandleGet GET /api/v1/properties/{propertyId}/stay-constraints
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/stay-constraints - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	result, err := h.service.GetConstraints(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /properties/{id}/stay-constraints - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)
			return
		}
		h.logger.Error("GET /properties/{id}/stay-constraints - Failed to get constraints: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties/{id}/stay-constraints - Constraints retrieved successfully: property_id=%d, default=%t",
		propertyID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePut PUT /api/v1/properties/{propertyId}/stay-constraints
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("PUT /properties/{id}/stay-constraints - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.ConstraintsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /properties/{id}/stay-constraints - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.PropertyID = propertyID

	result, err := h.service.PutConstraints(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /properties/{id}/stay-constraints - Invalid constraints: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidConstraints+": "+err.Error())
			return
		}
		h.logger.Error("PUT /properties/{id}/stay-constraints - Failed to save constraints: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /properties/{id}/stay-constraints - Constraints saved successfully: property_id=%d", propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
