package validate_stay

import (
	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	validateStay "github.com/m04kA/SMC-EstateBookingService/internal/usecase/validate_stay"
)

// ValidationResponse HTTP response model
type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Nights  int    `json:"nights"`
	Reason  string `json:"reason,omitempty"`  // код нарушенного правила
	Message string `json:"message,omitempty"` // сообщение для пользователя
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateStay.Response) *ValidationResponse {
	out := &ValidationResponse{
		Valid:  resp.Valid,
		Nights: resp.Nights,
		Reason: resp.Reason,
	}
	if !resp.Valid {
		out.Message = handlers.ReasonMessage(resp.Reason)
	}
	return out
}
