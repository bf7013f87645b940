package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Appointments визиты в памяти
type Appointments struct {
	s *Store
}

// Create сохраняет новый визит
func (r *Appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	a.ID = r.s.nextID()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.appointments[a.ID] = cloneAppointment(a)

	return a, nil
}

// GetByID получает визит по ID
func (r *Appointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

// ListActiveByDate возвращает визиты ресурса на дату в статусах pending и confirmed
func (r *Appointments) ListActiveByDate(_ context.Context, resourceID int64, date types.Date) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool {
		return a.ResourceID == resourceID && a.Date.Equal(date) && a.IsActive()
	}), nil
}

// List получает визиты ресурса с фильтрацией
func (r *Appointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool {
		if a.ResourceID != filter.ResourceID {
			return false
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			return false
		}
		return filter.Status == nil || a.Status == *filter.Status
	}), nil
}

// ConfirmedIntervals возвращает занятые интервалы подтвержденных визитов ресурса, пересекающиеся с window
func (r *Appointments) ConfirmedIntervals(_ context.Context, resourceID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error) {
	confirmed := r.filter(func(a *domain.Appointment) bool {
		return a.ResourceID == resourceID && a.ID != excludeID && a.Status == domain.StatusConfirmed
	})

	result := make([]interval.Interval, 0, len(confirmed))
	for _, a := range confirmed {
		iv, err := slots.OccupiedBy(a, r.s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: ConfirmedIntervals - appointment id=%d: %v", appointment.ErrScanRow, a.ID, err)
		}
		overlap, err := interval.Overlaps(iv, window)
		if err != nil {
			return nil, err
		}
		if overlap {
			result = append(result, iv)
		}
	}

	return result, nil
}

// SetStatus переводит визит из статуса from в to
func (r *Appointments) SetStatus(_ context.Context, id int64, from, to domain.ReservationStatus, reason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	if a.Status != from {
		return fmt.Errorf("%w: appointment id=%d is %s, expected %s", domain.ErrInvalidTransition, id, a.Status, from)
	}

	a.Status = to
	a.RefusalReason = cloneString(reason)
	a.UpdatedAt = r.s.now()

	return nil
}

func (r *Appointments) filter(keep func(a *domain.Appointment) bool) []*domain.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if keep(a) {
			result = append(result, cloneAppointment(a))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime.IsBefore(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})

	return result
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	if a.PropertyID != nil {
		id := *a.PropertyID
		c.PropertyID = &id
	}
	c.Visitor.Phone = cloneString(a.Visitor.Phone)
	c.RefusalReason = cloneString(a.RefusalReason)
	return &c
}
