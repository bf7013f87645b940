package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/stayrequest"
)

// StayRequests заявки на проживание в памяти
type StayRequests struct {
	s *Store
}

// Create сохраняет новую заявку
func (r *StayRequests) Create(_ context.Context, req *domain.StayRequest) (*domain.StayRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	req.ID = r.s.nextID()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.s.stays[req.ID] = cloneStay(req)

	return req, nil
}

// GetByID получает заявку по ID
func (r *StayRequests) GetByID(_ context.Context, id int64) (*domain.StayRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.stays[id]
	if !ok {
		return nil, stayrequest.ErrRequestNotFound
	}
	return cloneStay(req), nil
}

// List получает заявки объекта с фильтрацией
func (r *StayRequests) List(_ context.Context, filter domain.StayRequestFilter) ([]*domain.StayRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.StayRequest, 0)
	for _, req := range r.s.stays {
		if req.PropertyID != filter.PropertyID {
			continue
		}
		if filter.From != nil && !req.CheckOut.After(*filter.From) {
			continue
		}
		if filter.To != nil && !req.CheckIn.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		result = append(result, cloneStay(req))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CheckIn.Equal(result[j].CheckIn) {
			return result[i].CheckIn.Before(result[j].CheckIn)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// ConfirmedIntervals возвращает ночи подтвержденных заявок объекта, пересекающиеся с window
func (r *StayRequests) ConfirmedIntervals(_ context.Context, propertyID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]interval.Interval, 0)
	for _, req := range r.s.stays {
		if req.PropertyID != propertyID || req.ID == excludeID || !req.IsConfirmed() {
			continue
		}
		iv, err := interval.FromDates(req.CheckIn, req.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("%w: ConfirmedIntervals - stored range: %v", stayrequest.ErrScanRow, err)
		}
		overlap, err := interval.Overlaps(iv, window)
		if err != nil {
			return nil, err
		}
		if overlap {
			result = append(result, iv)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })

	return result, nil
}

// SetStatus переводит заявку из статуса from в to
func (r *StayRequests) SetStatus(_ context.Context, id int64, from, to domain.ReservationStatus, reason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.stays[id]
	if !ok {
		return stayrequest.ErrRequestNotFound
	}
	if req.Status != from {
		return fmt.Errorf("%w: stay request id=%d is %s, expected %s", domain.ErrInvalidTransition, id, req.Status, from)
	}

	req.Status = to
	req.RefusalReason = cloneString(reason)
	req.UpdatedAt = r.s.now()

	return nil
}

func cloneStay(req *domain.StayRequest) *domain.StayRequest {
	c := *req
	c.Guest.Phone = cloneString(req.Guest.Phone)
	c.Message = cloneString(req.Message)
	c.RefusalReason = cloneString(req.RefusalReason)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
