package create_stay_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	createStayRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_stay_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
	msgDateInPast         = "дата заезда уже прошла"
	msgDateTooFar         = "дата заезда слишком далеко в будущем"
)

type Handler struct {
	useCase CreateStayRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateStayRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stay-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateStayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stay-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case domain.IsRuleViolation(err):
			h.logger.Warn("POST /stay-requests - Rule violation: property_id=%d, reason=%s",
				req.PropertyID, domain.ReasonCode(err))
			handlers.RespondRuleViolation(w, err)

		case errors.Is(err, createStayRequest.ErrInvalidDate):
			h.logger.Warn("POST /stay-requests - Check-in in the past: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createStayRequest.ErrDateTooFarInFuture):
			h.logger.Warn("POST /stay-requests - Date too far in future: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createStayRequest.ErrInvalidInput):
			h.logger.Warn("POST /stay-requests - Invalid input: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /stay-requests - Failed to create stay request: property_id=%d, error=%v",
				req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stay-requests - Stay request created successfully: id=%d, property_id=%d",
		result.ID, result.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
