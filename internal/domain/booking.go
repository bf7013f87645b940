package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a stay request or a visit appointment
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRefused   ReservationStatus = "refused"
	StatusCancelled ReservationStatus = "cancelled"
)

// ReservationKind distinguishes seasonal stays from property visits
type ReservationKind string

const (
	KindStay  ReservationKind = "stay"
	KindVisit ReservationKind = "visit"
)

// ResourceKey identifies the serialization scope of a kind, e.g. "stay:42"
func ResourceKey(kind ReservationKind, resourceID int64) string {
	return fmt.Sprintf("%s:%d", kind, resourceID)
}

// Contact is the person who submitted a request
type Contact struct {
	Name  string
	Email string
	Phone *string
}

// StayRequest is a seasonal-rental booking request for the nights [CheckIn, CheckOut)
type StayRequest struct {
	ID            int64
	PropertyID    int64
	CheckIn       types.Date
	CheckOut      types.Date
	NumGuests     int
	Status        ReservationStatus
	Guest         Contact
	Message       *string
	RefusalReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Nights returns the number of nights of the stay
func (r *StayRequest) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// IsConfirmed returns true if the stay holds its dates
func (r *StayRequest) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// Appointment is a property visit booked on a slot.
// The occupied interval is [start - margin, start + duration + margin).
type Appointment struct {
	ID                  int64
	ResourceID          int64
	PropertyID          *int64
	Date                types.Date
	StartTime           types.TimeString
	DurationMinutes     int
	SafetyMarginMinutes int
	Status              ReservationStatus
	Visitor             Contact
	RefusalReason       *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// ReservationRef identifies a request of either kind
type ReservationRef struct {
	Kind ReservationKind
	ID   int64
}

// StatusChange describes a lifecycle transition reported to the collaborator
type StatusChange struct {
	Ref        ReservationRef
	ResourceID int64
	From       ReservationStatus
	To         ReservationStatus
	Reason     *string
	ChangedAt  time.Time
}

// StayRequestFilter filters stay requests of a property
type StayRequestFilter struct {
	PropertyID int64              // required
	From       *types.Date        // requests with check-out after From
	To         *types.Date        // requests with check-in before To
	Status     *ReservationStatus // nil = any status
}

// AppointmentFilter filters appointments of a visit resource
type AppointmentFilter struct {
	ResourceID int64              // required
	From       *types.Date        // inclusive
	To         *types.Date        // inclusive
	Status     *ReservationStatus // nil = any status
}
