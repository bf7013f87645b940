package create_visit_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	createVisitRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_visit_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные заявки"
	msgDateInPast         = "дата визита уже прошла"
	msgDateTooFar         = "дата визита слишком далеко в будущем"
	msgBusy               = "ресурс занят, повторите попытку"
)

type Handler struct {
	useCase CreateVisitRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateVisitRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visit-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visit-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /visit-requests - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /visit-requests - Slot unavailable: resource_id=%d, date=%s, time=%s",
				req.ResourceID, req.Date, req.StartTime)
			handlers.RespondRuleViolation(w, err)

		case errors.Is(err, createVisitRequest.ErrInvalidDate):
			h.logger.Warn("POST /visit-requests - Visit date in the past: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createVisitRequest.ErrDateTooFarInFuture):
			h.logger.Warn("POST /visit-requests - Date too far in future: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createVisitRequest.ErrInvalidInput):
			h.logger.Warn("POST /visit-requests - Invalid input: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createVisitRequest.ErrLock):
			h.logger.Warn("POST /visit-requests - Resource busy: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondConflict(w, msgBusy)

		default:
			h.logger.Error("POST /visit-requests - Failed to create visit request: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visit-requests - Visit request created successfully: id=%d, resource_id=%d, date=%s, time=%s",
		result.ID, result.ResourceID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
