package list_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleStays GET /api/v1/properties/{propertyId}/stay-requests
// Query params: from, to (YYYY-MM-DD), status (опционально)
func (h *Handler) HandleStays(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/stay-requests - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	from, errFrom := handlers.QueryDate(r, "from")
	to, errTo := handlers.QueryDate(r, "to")
	if err := errors.Join(errFrom, errTo); err != nil {
		h.logger.Warn("GET /properties/{id}/stay-requests - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListStays(r.Context(), &models.ListStaysRequest{
		PropertyID: propertyID,
		From:       from,
		To:         to,
		Status:     handlers.QueryString(r, "status"),
	})
	if err != nil {
		h.respondError(w, "GET /properties/{id}/stay-requests", err)
		return
	}

	h.logger.Info("GET /properties/{id}/stay-requests - Requests retrieved successfully: property_id=%d, count=%d",
		propertyID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleVisits GET /api/v1/resources/{resourceId}/visit-requests
// Query params: from, to (YYYY-MM-DD, включительно), status (опционально)
func (h *Handler) HandleVisits(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/visit-requests - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	from, errFrom := handlers.QueryDate(r, "from")
	to, errTo := handlers.QueryDate(r, "to")
	if err := errors.Join(errFrom, errTo); err != nil {
		h.logger.Warn("GET /resources/{id}/visit-requests - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListVisits(r.Context(), &models.ListVisitsRequest{
		ResourceID: resourceID,
		From:       from,
		To:         to,
		Status:     handlers.QueryString(r, "status"),
	})
	if err != nil {
		h.respondError(w, "GET /resources/{id}/visit-requests", err)
		return
	}

	h.logger.Info("GET /resources/{id}/visit-requests - Requests retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reservations.ErrInvalidInput):
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("%s - Failed to list requests: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
