package cancel_request

import (
	"errors"
	"io"
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
	msgInvalidReason      = "причина отмены слишком длинная"
	msgNotFound           = "заявка не найдена"
	msgCannotCancel       = "заявка не может быть отменена"
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

// Handle POST /api/v1/{kind}-requests/{id}/cancel
// Body (опционально): {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("POST /{kind}-requests/{id}/cancel - Invalid kind: %v", err)
		handlers.RespondNotFound(w, msgInvalidKind)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /%s-requests/{id}/cancel - Invalid ID: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// Тело необязательно: пустое тело означает отмену без причины
	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /%s-requests/{id}/cancel - Invalid request body: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), kind, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrRequestNotFound):
			h.logger.Warn("POST /%s-requests/{id}/cancel - Request not found: id=%d", kind, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /%s-requests/{id}/cancel - Invalid transition: id=%d, error=%v", kind, id, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /%s-requests/{id}/cancel - Invalid input: id=%d, error=%v", kind, id, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /%s-requests/{id}/cancel - Failed to cancel request: id=%d, error=%v", kind, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /%s-requests/{id}/cancel - Request cancelled successfully: id=%d", kind, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
