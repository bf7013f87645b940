package validate_stay

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	validateStay "github.com/m04kA/SMC-EstateBookingService/internal/usecase/validate_stay"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidDates      = "даты заезда и выезда обязательны в формате YYYY-MM-DD"
	msgInvalidGuests     = "некорректное количество гостей"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ValidateStayUseCase
	logger  Logger
}

func NewHandler(useCase ValidateStayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/stay-validation
// Query params: checkIn, checkOut (required, YYYY-MM-DD), guests (optional, default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/stay-validation - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	query := r.URL.Query()
	checkIn, errIn := types.ParseDate(query.Get("checkIn"))
	checkOut, errOut := types.ParseDate(query.Get("checkOut"))
	if errIn != nil || errOut != nil {
		h.logger.Warn("GET /properties/{id}/stay-validation - Invalid dates: %v", errors.Join(errIn, errOut))
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	guests := 1
	if raw := query.Get("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /properties/{id}/stay-validation - Invalid guests: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGuests)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &validateStay.Request{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NumGuests:  guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateStay.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/stay-validation - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /properties/{id}/stay-validation - Failed to validate stay: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/stay-validation - Stay checked: property_id=%d, %s..%s, valid=%t, reason=%s",
		propertyID, checkIn, checkOut, result.Valid, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
