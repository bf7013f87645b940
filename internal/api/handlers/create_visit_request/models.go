package create_visit_request

import (
	"time"

	createVisitRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_visit_request"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// CreateVisitRequest HTTP request model
type CreateVisitRequest struct {
	ResourceID int64      `json:"resourceId"`
	PropertyID *int64     `json:"propertyId,omitempty"`
	Date       types.Date `json:"date"`      // YYYY-MM-DD
	StartTime  string     `json:"startTime"` // HH:MM
	Visitor    Contact    `json:"visitor"`
}

// Contact контакт посетителя
type Contact struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// VisitResponse HTTP response model
type VisitResponse struct {
	ID                  int64      `json:"id"`
	ResourceID          int64      `json:"resourceId"`
	PropertyID          *int64     `json:"propertyId,omitempty"`
	Date                types.Date `json:"date"`
	StartTime           string     `json:"startTime"`
	DurationMinutes     int        `json:"durationMinutes"`
	SafetyMarginMinutes int        `json:"safetyMarginMinutes"`
	Status              string     `json:"status"`
	Visitor             Contact    `json:"visitor"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateVisitRequest) ToUseCaseRequest() (*createVisitRequest.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createVisitRequest.Request{
		ResourceID:   r.ResourceID,
		PropertyID:   r.PropertyID,
		Date:         r.Date,
		StartTime:    startTime,
		VisitorName:  r.Visitor.Name,
		VisitorEmail: r.Visitor.Email,
		VisitorPhone: r.Visitor.Phone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createVisitRequest.Response) *VisitResponse {
	return &VisitResponse{
		ID:                  resp.ID,
		ResourceID:          resp.ResourceID,
		PropertyID:          resp.PropertyID,
		Date:                resp.Date,
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		SafetyMarginMinutes: resp.SafetyMarginMinutes,
		Status:              resp.Status,
		Visitor: Contact{
			Name:  resp.VisitorName,
			Email: resp.VisitorEmail,
			Phone: resp.VisitorPhone,
		},
		CreatedAt: resp.CreatedAt,
	}
}
