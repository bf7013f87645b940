package refuse_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

const (
	msgInvalidKind        = "неизвестный тип заявки"
	msgInvalidID          = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReason      = "причина отказа обязательна"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "отказать можно только по заявке в ожидании"
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

// Handle POST /api/v1/{kind}-requests/{id}/refuse
// Body: {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("POST /{kind}-requests/{id}/refuse - Invalid kind: %v", err)
		handlers.RespondNotFound(w, msgInvalidKind)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /%s-requests/{id}/refuse - Invalid ID: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.RefuseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /%s-requests/{id}/refuse - Invalid request body: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Refuse(r.Context(), kind, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrRequestNotFound):
			h.logger.Warn("POST /%s-requests/{id}/refuse - Request not found: id=%d", kind, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /%s-requests/{id}/refuse - Invalid transition: id=%d, error=%v", kind, id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /%s-requests/{id}/refuse - Invalid input: id=%d, error=%v", kind, id, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /%s-requests/{id}/refuse - Failed to refuse request: id=%d, error=%v", kind, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /%s-requests/{id}/refuse - Request refused successfully: id=%d", kind, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
