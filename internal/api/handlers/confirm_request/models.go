package confirm_request

import (
	"github.com/m04kA/SMC-EstateBookingService/internal/api/handlers"
	confirmRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/confirm_request"
)

// ConfirmResponse HTTP response model. Отказ при подтверждении не является ошибкой запроса
type ConfirmResponse struct {
	Kind    string  `json:"kind"`
	ID      int64   `json:"id"`
	Status  string  `json:"status"`            // confirmed | refused
	Reason  *string `json:"reason,omitempty"`  // код причины отказа
	Message string  `json:"message,omitempty"` // сообщение для пользователя
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmRequest.Response) *ConfirmResponse {
	out := &ConfirmResponse{
		Kind:   string(resp.Kind),
		ID:     resp.ID,
		Status: string(resp.Status),
		Reason: resp.Reason,
	}
	if resp.Reason != nil {
		out.Message = handlers.ReasonMessage(*resp.Reason)
	}
	return out
}
