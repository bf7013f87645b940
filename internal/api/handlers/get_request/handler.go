package get_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations"
)

const (
	msgInvalidKind = "неизвестный тип заявки"
	msgInvalidID   = "некорректный ID заявки"
	msgNotFound    = "заявка не найдена"
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

// Handle GET /api/v1/{kind}-requests/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("GET /{kind}-requests/{id} - Invalid kind: %v", err)
		handlers.RespondNotFound(w, msgInvalidKind)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /%s-requests/{id} - Invalid ID: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var result interface{}
	if kind == domain.KindStay {
		result, err = h.service.GetStay(r.Context(), id)
	} else {
		result, err = h.service.GetVisit(r.Context(), id)
	}
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrRequestNotFound):
			h.logger.Warn("GET /%s-requests/{id} - Request not found: id=%d", kind, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /%s-requests/{id} - Failed to get request: id=%d, error=%v", kind, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /%s-requests/{id} - Request retrieved successfully: id=%d", kind, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
