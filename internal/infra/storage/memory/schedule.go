package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Rules правила доступности в памяти
type Rules struct {
	s *Store
}

// ListByResource возвращает правила ресурса, упорядоченные по дню недели и началу окна
func (r *Rules) ListByResource(_ context.Context, resourceID int64) ([]*domain.AvailabilityRule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored := r.s.rules[resourceID]
	result := make([]*domain.AvailabilityRule, 0, len(stored))
	for _, rule := range stored {
		c := *rule
		result = append(result, &c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Weekday != result[j].Weekday {
			return result[i].Weekday < result[j].Weekday
		}
		return result[i].WindowStart.IsBefore(result[j].WindowStart)
	})

	return result, nil
}

// ReplaceForResource заменяет набор правил ресурса целиком
func (r *Rules) ReplaceForResource(_ context.Context, resourceID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	stored := make([]*domain.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		rule.ID = r.s.nextID()
		rule.ResourceID = resourceID
		rule.CreatedAt = now
		rule.UpdatedAt = now
		c := *rule
		stored = append(stored, &c)
	}
	r.s.rules[resourceID] = stored

	return rules, nil
}

// Properties условия проживания и периоды в памяти
type Properties struct {
	s *Store
}

// GetConstraints возвращает условия проживания объекта
func (r *Properties) GetConstraints(_ context.Context, propertyID int64) (*domain.StayConstraints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.constraints[propertyID]
	if !ok {
		return nil, property.ErrConstraintsNotFound
	}
	return cloneConstraints(c), nil
}

// UpsertConstraints создает или заменяет условия проживания объекта
func (r *Properties) UpsertConstraints(_ context.Context, c *domain.StayConstraints) (*domain.StayConstraints, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.UpdatedAt = r.s.now()
	r.s.constraints[c.PropertyID] = cloneConstraints(c)

	return c, nil
}

// ListPeriods возвращает периоды объекта, пересекающиеся с [from, to]
func (r *Properties) ListPeriods(_ context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.BlockedPeriod, 0)
	for _, p := range r.s.periods {
		if p.PropertyID != propertyID {
			continue
		}
		if from != nil && p.EndDate.Before(*from) {
			continue
		}
		if to != nil && p.StartDate.After(*to) {
			continue
		}
		result = append(result, clonePeriod(p))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// CreatePeriod сохраняет новый период
func (r *Properties) CreatePeriod(_ context.Context, p *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextID()
	p.CreatedAt = r.s.now()
	r.s.periods[p.ID] = clonePeriod(p)

	return p, nil
}

// DeletePeriod удаляет период объекта
func (r *Properties) DeletePeriod(_ context.Context, propertyID, periodID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.periods[periodID]
	if !ok || p.PropertyID != propertyID {
		return property.ErrPeriodNotFound
	}
	delete(r.s.periods, periodID)

	return nil
}

func cloneConstraints(c *domain.StayConstraints) *domain.StayConstraints {
	out := *c
	out.AllowedArrivalWeekdays = append([]domain.Weekday(nil), c.AllowedArrivalWeekdays...)
	out.AllowedDepartureWeekdays = append([]domain.Weekday(nil), c.AllowedDepartureWeekdays...)
	return &out
}

func clonePeriod(p *domain.BlockedPeriod) *domain.BlockedPeriod {
	out := *p
	out.Reason = cloneString(p.Reason)
	return &out
}
