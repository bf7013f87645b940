// Package slots turns weekly availability rules into the visit slots of a day.
package slots

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// ErrInvalidRule is returned for a rule that violates its own invariants
var ErrInvalidRule = errors.New("slots: invalid availability rule")

// RecommendFunc decides whether a slot starting at the given minute of the day is recommended
type RecommendFunc func(startMinutes int) bool

// EveryMinutes recommends slots whose start is a multiple of step minutes since midnight.
// EveryMinutes(60) recommends slots on the hour. A non-positive step recommends nothing.
func EveryMinutes(step int) RecommendFunc {
	return func(startMinutes int) bool {
		return step > 0 && startMinutes%step == 0
	}
}

// Options configures the generator
type Options struct {
	// Location places calendar dates and window times on the clock
	Location *time.Location
	// MinNoticeMinutes hides today's slots starting sooner than now + notice
	MinNoticeMinutes int
	Recommend        RecommendFunc
}

// Generator is stateless and safe for concurrent use
type Generator struct {
	loc       *time.Location
	minNotice time.Duration
	recommend RecommendFunc
}

// NewGenerator creates a generator. Zero options mean UTC, no notice and on-the-hour recommendations
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		loc:       opts.Location,
		minNotice: time.Duration(opts.MinNoticeMinutes) * time.Minute,
		recommend: opts.Recommend,
	}
	if g.loc == nil {
		g.loc = time.UTC
	}
	if g.recommend == nil {
		g.recommend = EveryMinutes(domain.DefaultRecommendEveryMinutes)
	}
	return g
}

// Location returns the time zone the generator works in
func (g *Generator) Location() *time.Location {
	return g.loc
}

// GenerateDay builds the slots of date from every active rule matching its weekday.
// occupied holds the occupied intervals of the day's pending and confirmed appointments.
// Slots from several rules are merged and ordered by start time.
func (g *Generator) GenerateDay(
	date types.Date,
	rules []*domain.AvailabilityRule,
	occupied []interval.Interval,
	now time.Time,
) ([]domain.TimeSlot, error) {
	result := make([]domain.TimeSlot, 0)

	for _, rule := range rules {
		if rule == nil || !rule.AppliesTo(date) {
			continue
		}

		ruleSlots, err := g.Generate(date, rule, occupied, now)
		if err != nil {
			return nil, err
		}
		result = merge(result, ruleSlots)
	}

	return result, nil
}

// Generate builds the slots of a single rule for date.
//
// Candidates start at WindowStart and advance by SlotIntervalMinutes while
// start + duration + margin <= WindowEnd. A window shorter than duration + 2*margin
// yields no slots. A slot is unavailable when its occupied interval overlaps occupied,
// or when it starts before now + notice.
func (g *Generator) Generate(
	date types.Date,
	rule *domain.AvailabilityRule,
	occupied []interval.Interval,
	now time.Time,
) ([]domain.TimeSlot, error) {
	result := make([]domain.TimeSlot, 0)

	if rule == nil || !rule.AppliesTo(date) {
		return result, nil
	}

	windowStart, windowEnd, err := validateRule(rule)
	if err != nil {
		return nil, err
	}

	if !rule.FitsOneVisit() {
		return result, nil
	}

	duration := time.Duration(rule.VisitDurationMinutes) * time.Minute
	margin := time.Duration(rule.SafetyMarginMinutes) * time.Minute
	earliest := now.Add(g.minNotice)

	for m := windowStart; m+rule.VisitDurationMinutes+rule.SafetyMarginMinutes <= windowEnd; m += rule.SlotIntervalMinutes {
		start := date.AtMinutes(m, g.loc)

		occupiedByCandidate, err := interval.Occupied(start, duration, margin)
		if err != nil {
			return nil, err
		}

		_, taken, err := interval.OverlapsAny(occupiedByCandidate, occupied)
		if err != nil {
			return nil, err
		}

		slotTime, err := types.TimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}

		priority := domain.RegularPriority
		if g.recommend(m) {
			priority = domain.RecommendedPriority
		}

		result = append(result, domain.TimeSlot{
			Date:      date,
			Time:      slotTime,
			Available: !taken && !start.Before(earliest),
			Priority:  priority,
		})
	}

	return result, nil
}

// FindSlot returns the slot starting at t
func FindSlot(slots []domain.TimeSlot, t types.TimeString) (domain.TimeSlot, bool) {
	for _, s := range slots {
		if s.Time == t {
			return s, true
		}
	}
	return domain.TimeSlot{}, false
}

// CountAvailable returns the number of available slots
func CountAvailable(slots []domain.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}

func validateRule(rule *domain.AvailabilityRule) (int, int, error) {
	start, end, err := rule.WindowMinutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: rule id=%d: %v", ErrInvalidRule, rule.ID, err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: rule id=%d: window %s-%s is empty", ErrInvalidRule, rule.ID, rule.WindowStart, rule.WindowEnd)
	}
	if rule.VisitDurationMinutes <= 0 || rule.SlotIntervalMinutes <= 0 || rule.SafetyMarginMinutes < 0 {
		return 0, 0, fmt.Errorf("%w: rule id=%d: duration=%d interval=%d margin=%d", ErrInvalidRule,
			rule.ID, rule.VisitDurationMinutes, rule.SlotIntervalMinutes, rule.SafetyMarginMinutes)
	}
	return start, end, nil
}

// merge combines two slot lists ordered by time. The same start from two rules
// is reported once: available if any rule offers it, with the higher priority.
func merge(a, b []domain.TimeSlot) []domain.TimeSlot {
	if len(a) == 0 {
		return b
	}

	byTime := make(map[types.TimeString]int, len(a)+len(b))
	result := make([]domain.TimeSlot, 0, len(a)+len(b))

	for _, list := range [][]domain.TimeSlot{a, b} {
		for _, s := range list {
			if i, ok := byTime[s.Time]; ok {
				result[i].Available = result[i].Available || s.Available
				if s.Priority > result[i].Priority {
					result[i].Priority = s.Priority
				}
				continue
			}
			byTime[s.Time] = len(result)
			result = append(result, s)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Time.IsBefore(result[j].Time)
	})
	return result
}
