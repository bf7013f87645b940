package models

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request модели

// RuleInput одно недельное окно доступности
type RuleInput struct {
	Weekday              domain.Weekday   `json:"weekday"`     // 1..7 или название дня
	WindowStart          types.TimeString `json:"windowStart"` // HH:MM
	WindowEnd            types.TimeString `json:"windowEnd"`   // HH:MM
	VisitDurationMinutes int              `json:"visitDurationMinutes"`
	SafetyMarginMinutes  int              `json:"safetyMarginMinutes"`
	SlotIntervalMinutes  int              `json:"slotIntervalMinutes"`
	Active               *bool            `json:"active,omitempty"` // nil = true
}

// ReplaceRulesRequest запрос на замену всех правил ресурса
type ReplaceRulesRequest struct {
	ResourceID int64       `json:"-"`
	Rules      []RuleInput `json:"rules"`
}

// ConstraintsRequest запрос на сохранение условий проживания
type ConstraintsRequest struct {
	PropertyID               int64            `json:"-"`
	MinStayNights            int              `json:"minStayNights"`
	AllowedArrivalWeekdays   []domain.Weekday `json:"allowedArrivalWeekdays"`   // пусто = любой день
	AllowedDepartureWeekdays []domain.Weekday `json:"allowedDepartureWeekdays"` // пусто = любой день
	MaxGuests                int              `json:"maxGuests"`                // 0 = без ограничений
	UseAllowList             bool             `json:"useAllowList"`
}

// PeriodRequest запрос на создание периода
type PeriodRequest struct {
	PropertyID int64      `json:"-"`
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`           // включительно
	Blocked    *bool      `json:"blocked,omitempty"` // nil = true
	Reason     *string    `json:"reason,omitempty"`
}

// ListPeriodsRequest запрос на получение периодов объекта
type ListPeriodsRequest struct {
	PropertyID int64
	From       *types.Date
	To         *types.Date
}

// Response модели

// RuleResponse правило доступности
type RuleResponse struct {
	ID                   int64            `json:"id"`
	Weekday              domain.Weekday   `json:"weekday"`
	WindowStart          types.TimeString `json:"windowStart"`
	WindowEnd            types.TimeString `json:"windowEnd"`
	VisitDurationMinutes int              `json:"visitDurationMinutes"`
	SafetyMarginMinutes  int              `json:"safetyMarginMinutes"`
	SlotIntervalMinutes  int              `json:"slotIntervalMinutes"`
	Active               bool             `json:"active"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// RuleListResponse правила ресурса
type RuleListResponse struct {
	ResourceID int64          `json:"resourceId"`
	Rules      []RuleResponse `json:"rules"`
}

// ConstraintsResponse условия проживания объекта
type ConstraintsResponse struct {
	PropertyID               int64            `json:"propertyId"`
	MinStayNights            int              `json:"minStayNights"`
	AllowedArrivalWeekdays   []domain.Weekday `json:"allowedArrivalWeekdays"`
	AllowedDepartureWeekdays []domain.Weekday `json:"allowedDepartureWeekdays"`
	MaxGuests                int              `json:"maxGuests"`
	UseAllowList             bool             `json:"useAllowList"`
	IsDefault                bool             `json:"isDefault"` // условия не настроены, действуют значения по умолчанию
	UpdatedAt                *time.Time       `json:"updatedAt,omitempty"`
}

// PeriodResponse закрытый или открытый период объекта
type PeriodResponse struct {
	ID         int64      `json:"id"`
	PropertyID int64      `json:"propertyId"`
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`
	Blocked    bool       `json:"blocked"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// PeriodListResponse периоды объекта
type PeriodListResponse struct {
	PropertyID int64            `json:"propertyId"`
	Periods    []PeriodResponse `json:"periods"`
}

// Методы конвертации

// ToDomainRule конвертирует входное правило в domain модель
func (r RuleInput) ToDomainRule(resourceID int64) *domain.AvailabilityRule {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.AvailabilityRule{
		ResourceID:           resourceID,
		Weekday:              r.Weekday,
		WindowStart:          r.WindowStart,
		WindowEnd:            r.WindowEnd,
		VisitDurationMinutes: r.VisitDurationMinutes,
		SafetyMarginMinutes:  r.SafetyMarginMinutes,
		SlotIntervalMinutes:  r.SlotIntervalMinutes,
		Active:               active,
	}
}

// FromDomainRuleList конвертирует правила ресурса в DTO
func FromDomainRuleList(resourceID int64, rules []*domain.AvailabilityRule) *RuleListResponse {
	resp := &RuleListResponse{
		ResourceID: resourceID,
		Rules:      make([]RuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:                   r.ID,
			Weekday:              r.Weekday,
			WindowStart:          r.WindowStart,
			WindowEnd:            r.WindowEnd,
			VisitDurationMinutes: r.VisitDurationMinutes,
			SafetyMarginMinutes:  r.SafetyMarginMinutes,
			SlotIntervalMinutes:  r.SlotIntervalMinutes,
			Active:               r.Active,
			UpdatedAt:            r.UpdatedAt,
		})
	}

	return resp
}

// ToDomainConstraints конвертирует запрос в domain модель
func (r *ConstraintsRequest) ToDomainConstraints() *domain.StayConstraints {
	return &domain.StayConstraints{
		PropertyID:               r.PropertyID,
		MinStayNights:            r.MinStayNights,
		AllowedArrivalWeekdays:   uniqueWeekdays(r.AllowedArrivalWeekdays),
		AllowedDepartureWeekdays: uniqueWeekdays(r.AllowedDepartureWeekdays),
		MaxGuests:                r.MaxGuests,
		UseAllowList:             r.UseAllowList,
	}
}

// FromDomainConstraints конвертирует domain модель в DTO
func FromDomainConstraints(c *domain.StayConstraints, isDefault bool) *ConstraintsResponse {
	resp := &ConstraintsResponse{
		PropertyID:               c.PropertyID,
		MinStayNights:            c.MinStayNights,
		AllowedArrivalWeekdays:   nonNilWeekdays(c.AllowedArrivalWeekdays),
		AllowedDepartureWeekdays: nonNilWeekdays(c.AllowedDepartureWeekdays),
		MaxGuests:                c.MaxGuests,
		UseAllowList:             c.UseAllowList,
		IsDefault:                isDefault,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ToDomainPeriod конвертирует запрос в domain модель
func (r *PeriodRequest) ToDomainPeriod() *domain.BlockedPeriod {
	blocked := true
	if r.Blocked != nil {
		blocked = *r.Blocked
	}

	return &domain.BlockedPeriod{
		PropertyID: r.PropertyID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Blocked:    blocked,
		Reason:     r.Reason,
	}
}

// FromDomainPeriod конвертирует domain модель в DTO
func FromDomainPeriod(p *domain.BlockedPeriod) *PeriodResponse {
	if p == nil {
		return nil
	}

	return &PeriodResponse{
		ID:         p.ID,
		PropertyID: p.PropertyID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Blocked:    p.Blocked,
		Reason:     p.Reason,
		CreatedAt:  p.CreatedAt,
	}
}

// FromDomainPeriodList конвертирует список периодов в DTO
func FromDomainPeriodList(propertyID int64, periods []*domain.BlockedPeriod) *PeriodListResponse {
	resp := &PeriodListResponse{
		PropertyID: propertyID,
		Periods:    make([]PeriodResponse, 0, len(periods)),
	}

	for _, p := range periods {
		if item := FromDomainPeriod(p); item != nil {
			resp.Periods = append(resp.Periods, *item)
		}
	}

	return resp
}

func uniqueWeekdays(days []domain.Weekday) []domain.Weekday {
	result := make([]domain.Weekday, 0, len(days))
	for _, d := range days {
		if !domain.ContainsWeekday(result, d) {
			result = append(result, d)
		}
	}
	return result
}

func nonNilWeekdays(days []domain.Weekday) []domain.Weekday {
	if days == nil {
		return []domain.Weekday{}
	}
	return days
}
