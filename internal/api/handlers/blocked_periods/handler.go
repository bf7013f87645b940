package blocked_periods

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidPeriodID    = "некорректный ID периода"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidPeriod      = "некорректный период"
	msgPeriodNotFound     = "период не найден"
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

// HandleList GET /api/v1/properties/{propertyId}/blocked-periods
// Query params: from, to (YYYY-MM-DD, опционально)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/blocked-periods - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	from, errFrom := handlers.QueryDate(r, "from")
	to, errTo := handlers.QueryDate(r, "to")
	if err := errors.Join(errFrom, errTo); err != nil {
		h.logger.Warn("GET /properties/{id}/blocked-periods - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListPeriods(r.Context(), &models.ListPeriodsRequest{
		PropertyID: propertyID,
		From:       from,
		To:         to,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /properties/{id}/blocked-periods - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /properties/{id}/blocked-periods - Failed to list periods: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties/{id}/blocked-periods - Periods retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/properties/{propertyId}/blocked-periods
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("POST /properties/{id}/blocked-periods - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.PeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.PropertyID = propertyID

	result, err := h.service.AddPeriod(r.Context(), &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("POST /properties/{id}/blocked-periods - Invalid period: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod+": "+err.Error())
			return
		}
		h.logger.Error("POST /properties/{id}/blocked-periods - Failed to create period: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /properties/{id}/blocked-periods - Period created successfully: property_id=%d, period_id=%d",
		propertyID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/properties/{propertyId}/blocked-periods/{periodId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("DELETE /properties/{id}/blocked-periods/{periodId} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	periodID, err := handlers.PathID(r, "periodId")
	if err != nil {
		h.logger.Warn("DELETE /properties/{id}/blocked-periods/{periodId} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	if err := h.service.DeletePeriod(r.Context(), propertyID, periodID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrPeriodNotFound):
			h.logger.Warn("DELETE /properties/{id}/blocked-periods/{periodId} - Period not found: property_id=%d, period_id=%d",
				propertyID, periodID)
			handlers.RespondNotFound(w, msgPeriodNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /properties/{id}/blocked-periods/{periodId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriodID)

		default:
			h.logger.Error("DELETE /properties/{id}/blocked-periods/{periodId} - Failed to delete period: period_id=%d, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /properties/{id}/blocked-periods/{periodId} - Period deleted successfully: period_id=%d", periodID)
	w.WriteHeader(http.StatusNoContent)
}
