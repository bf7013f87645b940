package confirm_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	confirmRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/confirm_request"
)

const (
	msgInvalidKind       = "неизвестный тип заявки"
	msgInvalidID         = "некорректный ID заявки"
	msgNotFound          = "заявка не найдена"
	msgInvalidTransition = "заявка уже обработана"
)

type Handler struct {
	useCase ConfirmRequestUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/{kind}-requests/{id}/confirm
// Ответ 200 со статусом confirmed или refused
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := handlers.PathKind(r)
	if err != nil {
		h.logger.Warn("POST /{kind}-requests/{id}/confirm - Invalid kind: %v", err)
		handlers.RespondNotFound(w, msgInvalidKind)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /%s-requests/{id}/confirm - Invalid ID: %v", kind, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmRequest.Request{Kind: kind, ID: id})
	if err != nil {
		switch {
		case errors.Is(err, confirmRequest.ErrRequestNotFound):
			h.logger.Warn("POST /%s-requests/{id}/confirm - Request not found: id=%d", kind, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /%s-requests/{id}/confirm - Invalid transition: id=%d, error=%v", kind, id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, confirmRequest.ErrInvalidInput):
			h.logger.Warn("POST /%s-requests/{id}/confirm - Invalid input: id=%d, error=%v", kind, id, err)
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("POST /%s-requests/{id}/confirm - Failed to confirm request: id=%d, error=%v", kind, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /%s-requests/{id}/confirm - Request processed: id=%d, status=%s", kind, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
