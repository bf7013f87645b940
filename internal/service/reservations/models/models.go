package models

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request модели

// ListStaysRequest запрос на получение заявок объекта
type ListStaysRequest struct {
	PropertyID int64       `json:"propertyId"`
	From       *types.Date `json:"from,omitempty"`   // Заявки с выездом после From
	To         *types.Date `json:"to,omitempty"`     // Заявки с заездом до To
	Status     *string     `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ListVisitsRequest запрос на получение визитов ресурса
type ListVisitsRequest struct {
	ResourceID int64       `json:"resourceId"`
	From       *types.Date `json:"from,omitempty"` // Включительно
	To         *types.Date `json:"to,omitempty"`   // Включительно
	Status     *string     `json:"status,omitempty"`
}

// RefuseRequest запрос на отказ по заявке
type RefuseRequest struct {
	Reason string `json:"reason"`
}

// CancelRequest запрос на отмену заявки
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// ContactResponse контакт автора заявки
type ContactResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// StayRequestResponse заявка на проживание
type StayRequestResponse struct {
	ID            int64           `json:"id"`
	PropertyID    int64           `json:"propertyId"`
	CheckIn       types.Date      `json:"checkIn"`
	CheckOut      types.Date      `json:"checkOut"`
	Nights        int             `json:"nights"`
	NumGuests     int             `json:"numGuests"`
	Status        string          `json:"status"`
	Guest         ContactResponse `json:"guest"`
	Message       *string         `json:"message,omitempty"`
	RefusalReason *string         `json:"refusalReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// StayRequestListResponse список заявок на проживание
type StayRequestListResponse struct {
	Requests []StayRequestResponse `json:"requests"`
}

// AppointmentResponse визит
type AppointmentResponse struct {
	ID                  int64            `json:"id"`
	ResourceID          int64            `json:"resourceId"`
	PropertyID          *int64           `json:"propertyId,omitempty"`
	Date                types.Date       `json:"date"`
	StartTime           types.TimeString `json:"startTime"`
	DurationMinutes     int              `json:"durationMinutes"`
	SafetyMarginMinutes int              `json:"safetyMarginMinutes"`
	Status              string           `json:"status"`
	Visitor             ContactResponse  `json:"visitor"`
	RefusalReason       *string          `json:"refusalReason,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// AppointmentListResponse список визитов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatusResponse статус заявки после перехода
type StatusResponse struct {
	Kind   string  `json:"kind"`
	ID     int64   `json:"id"`
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// Методы конвертации

func fromDomainContact(c domain.Contact) ContactResponse {
	return ContactResponse{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// FromDomainStayRequest конвертирует domain модель в DTO
func FromDomainStayRequest(r *domain.StayRequest) *StayRequestResponse {
	if r == nil {
		return nil
	}

	return &StayRequestResponse{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Nights:        r.Nights(),
		NumGuests:     r.NumGuests,
		Status:        string(r.Status),
		Guest:         fromDomainContact(r.Guest),
		Message:       r.Message,
		RefusalReason: r.RefusalReason,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainStayRequestList конвертирует список domain моделей в DTO
func FromDomainStayRequestList(requests []*domain.StayRequest) *StayRequestListResponse {
	resp := &StayRequestListResponse{
		Requests: make([]StayRequestResponse, 0, len(requests)),
	}

	for _, r := range requests {
		if item := FromDomainStayRequest(r); item != nil {
			resp.Requests = append(resp.Requests, *item)
		}
	}

	return resp
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                  a.ID,
		ResourceID:          a.ResourceID,
		PropertyID:          a.PropertyID,
		Date:                a.Date,
		StartTime:           a.StartTime,
		DurationMinutes:     a.DurationMinutes,
		SafetyMarginMinutes: a.SafetyMarginMinutes,
		Status:              string(a.Status),
		Visitor:             fromDomainContact(a.Visitor),
		RefusalReason:       a.RefusalReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует необязательный статус фильтра
func ToDomainStatus(status *string) (*domain.ReservationStatus, error) {
	if status == nil {
		return nil, nil
	}

	s, err := domain.ParseReservationStatus(*status)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
