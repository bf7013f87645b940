package create_stay_request

import (
	"time"

	createStayRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_stay_request"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// CreateStayRequest HTTP request model
type CreateStayRequest struct {
	PropertyID int64      `json:"propertyId"`
	CheckIn    types.Date `json:"checkIn"`  // YYYY-MM-DD
	CheckOut   types.Date `json:"checkOut"` // YYYY-MM-DD
	NumGuests  int        `json:"numGuests"`
	Guest      Contact    `json:"guest"`
	Message    *string    `json:"message,omitempty"`
}

// Contact контакт гостя
type Contact struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// StayRequestResponse HTTP response model
type StayRequestResponse struct {
	ID         int64      `json:"id"`
	PropertyID int64      `json:"propertyId"`
	CheckIn    types.Date `json:"checkIn"`
	CheckOut   types.Date `json:"checkOut"`
	Nights     int        `json:"nights"`
	NumGuests  int        `json:"numGuests"`
	Status     string     `json:"status"`
	Guest      Contact    `json:"guest"`
	Message    *string    `json:"message,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateStayRequest) ToUseCaseRequest() *createStayRequest.Request {
	return &createStayRequest.Request{
		PropertyID: r.PropertyID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		NumGuests:  r.NumGuests,
		GuestName:  r.Guest.Name,
		GuestEmail: r.Guest.Email,
		GuestPhone: r.Guest.Phone,
		Message:    r.Message,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createStayRequest.Response) *StayRequestResponse {
	return &StayRequestResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		CheckIn:    resp.CheckIn,
		CheckOut:   resp.CheckOut,
		Nights:     resp.Nights,
		NumGuests:  resp.NumGuests,
		Status:     resp.Status,
		Guest: Contact{
			Name:  resp.GuestName,
			Email: resp.GuestEmail,
			Phone: resp.GuestPhone,
		},
		Message:   resp.Message,
		CreatedAt: resp.CreatedAt,
	}
}
