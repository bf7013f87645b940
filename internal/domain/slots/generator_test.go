package slots

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// 2024-07-01 is a Monday
var monday = types.NewDate(2024, time.July, 1)

// Задолго до проверяемой даты, чтобы слоты не считались прошедшими
var longAgo = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

func mondayMorningRule() *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:                   1,
		ResourceID:           10,
		Weekday:              domain.Monday,
		WindowStart:          "09:00",
		WindowEnd:            "12:00",
		VisitDurationMinutes: 45,
		SafetyMarginMinutes:  15,
		SlotIntervalMinutes:  30,
		Active:               true,
	}
}

func times(slots []domain.TimeSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Time.String())
	}
	return result
}

func availableTimes(slots []domain.TimeSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			result = append(result, s.Time.String())
		}
	}
	return result
}

func occupiedAt(t *testing.T, date types.Date, hhmm types.TimeString, duration, margin int) interval.Interval {
	t.Helper()
	start, err := date.At(hhmm, time.UTC)
	require.NoError(t, err)
	iv, err := interval.Occupied(start, time.Duration(duration)*time.Minute, time.Duration(margin)*time.Minute)
	require.NoError(t, err)
	return iv
}

func TestGenerate_MondayMorningWindow(t *testing.T) {
	g := NewGenerator(Options{})

	slots, err := g.Generate(monday, mondayMorningRule(), nil, longAgo)
	require.NoError(t, err)

	// 11:00 + 45 + 15 = 12:00, конец окна включается
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, times(slots))
	assert.Equal(t, times(slots), availableTimes(slots))

	for _, s := range slots {
		assert.Equal(t, monday, s.Date)
		if s.Time == "09:00" || s.Time == "10:00" || s.Time == "11:00" {
			assert.Equal(t, domain.RecommendedPriority, s.Priority, s.Time)
		} else {
			assert.Equal(t, domain.RegularPriority, s.Priority, s.Time)
		}
	}
}

func TestGenerate_WindowTooSmall(t *testing.T) {
	tests := []struct {
		name     string
		window   [2]types.TimeString
		duration int
		margin   int
	}{
		{"shorter than visit with margins", [2]types.TimeString{"09:00", "10:00"}, 45, 10},
		{"shorter than visit", [2]types.TimeString{"09:00", "09:30"}, 45, 0},
		{"exactly one minute short", [2]types.TimeString{"09:00", "10:14"}, 45, 15},
	}

	g := NewGenerator(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := mondayMorningRule()
			rule.WindowStart, rule.WindowEnd = tt.window[0], tt.window[1]
			rule.VisitDurationMinutes = tt.duration
			rule.SafetyMarginMinutes = tt.margin

			slots, err := g.Generate(monday, rule, nil, longAgo)
			require.NoError(t, err)
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestGenerate_ExistingAppointmentBlocksOverlappingSlots(t *testing.T) {
	g := NewGenerator(Options{})
	occupied := []interval.Interval{occupiedAt(t, monday, "09:00", 45, 15)}

	slots, err := g.Generate(monday, mondayMorningRule(), occupied, longAgo)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:30", "11:00"}, availableTimes(slots))

	// Доступные слоты никогда не пересекаются с занятыми интервалами
	for _, s := range slots {
		if !s.Available {
			continue
		}
		candidate := occupiedAt(t, monday, s.Time, 45, 15)
		_, hit, err := interval.OverlapsAny(candidate, occupied)
		require.NoError(t, err)
		assert.False(t, hit, s.Time)
	}
}

func TestGenerate_Today(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		minNotice int
		want      []string
	}{
		{
			name: "past slots are unavailable",
			now:  time.Date(2024, time.July, 1, 10, 10, 0, 0, time.UTC),
			want: []string{"10:30", "11:00"},
		},
		{
			name: "slot starting right now is still available",
			now:  time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC),
			want: []string{"10:00", "10:30", "11:00"},
		},
		{
			name:      "minimum notice",
			now:       time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC),
			minNotice: 60,
			want:      []string{"10:00", "10:30", "11:00"},
		},
		{
			name: "date already passed",
			now:  time.Date(2024, time.July, 2, 8, 0, 0, 0, time.UTC),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(Options{MinNoticeMinutes: tt.minNotice})

			slots, err := g.Generate(monday, mondayMorningRule(), nil, tt.now)
			require.NoError(t, err)
			assert.Len(t, slots, 5)
			assert.Equal(t, tt.want, availableTimes(slots))
		})
	}
}

func TestGenerate_RuleDoesNotApply(t *testing.T) {
	g := NewGenerator(Options{})

	tuesday := monday.AddDays(1)
	slots, err := g.Generate(tuesday, mondayMorningRule(), nil, longAgo)
	require.NoError(t, err)
	assert.Empty(t, slots)

	inactive := mondayMorningRule()
	inactive.Active = false
	slots, err = g.Generate(monday, inactive, nil, longAgo)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = g.GenerateDay(tuesday, []*domain.AvailabilityRule{mondayMorningRule()}, nil, longAgo)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_InvalidRule(t *testing.T) {
	g := NewGenerator(Options{})

	reversed := mondayMorningRule()
	reversed.WindowStart, reversed.WindowEnd = "12:00", "09:00"
	_, err := g.Generate(monday, reversed, nil, longAgo)
	assert.ErrorIs(t, err, ErrInvalidRule)

	noStep := mondayMorningRule()
	noStep.SlotIntervalMinutes = 0
	_, err = g.Generate(monday, noStep, nil, longAgo)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestGenerate_MalformedOccupancy(t *testing.T) {
	g := NewGenerator(Options{})
	bad := interval.Interval{
		Start: time.Date(2024, time.July, 1, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC),
	}

	_, err := g.Generate(monday, mondayMorningRule(), []interval.Interval{bad}, longAgo)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestGenerate_CustomRecommendation(t *testing.T) {
	g := NewGenerator(Options{Recommend: EveryMinutes(90)})

	slots, err := g.Generate(monday, mondayMorningRule(), nil, longAgo)
	require.NoError(t, err)

	recommended := make([]string, 0)
	for _, s := range slots {
		if s.IsRecommended() {
			recommended = append(recommended, s.Time.String())
		}
	}
	// 09:00 = 540 мин, 10:30 = 630 мин
	assert.Equal(t, []string{"09:00", "10:30"}, recommended)

	never := NewGenerator(Options{Recommend: EveryMinutes(0)})
	slots, err = never.Generate(monday, mondayMorningRule(), nil, longAgo)
	require.NoError(t, err)
	for _, s := range slots {
		assert.False(t, s.IsRecommended())
	}
}

func TestGenerateDay_MergesRules(t *testing.T) {
	g := NewGenerator(Options{})

	afternoon := mondayMorningRule()
	afternoon.ID = 2
	afternoon.WindowStart, afternoon.WindowEnd = "14:00", "15:30"

	overlappingMorning := mondayMorningRule()
	overlappingMorning.ID = 3
	overlappingMorning.WindowStart, overlappingMorning.WindowEnd = "10:00", "11:00"

	rules := []*domain.AvailabilityRule{afternoon, mondayMorningRule(), overlappingMorning}

	slots, err := g.GenerateDay(monday, rules, nil, longAgo)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "14:00", "14:30"}, times(slots))
}

func TestGenerate_DeterministicAndPure(t *testing.T) {
	g := NewGenerator(Options{})
	occupied := []interval.Interval{occupiedAt(t, monday, "10:30", 45, 15)}
	snapshot := append([]interval.Interval(nil), occupied...)
	rule := mondayMorningRule()
	ruleCopy := *rule

	first, err := g.GenerateDay(monday, []*domain.AvailabilityRule{rule}, occupied, longAgo)
	require.NoError(t, err)
	second, err := g.GenerateDay(monday, []*domain.AvailabilityRule{rule}, occupied, longAgo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, occupied)
	assert.Equal(t, ruleCopy, *rule)
}

func TestGenerate_TimeZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	g := NewGenerator(Options{Location: paris})

	// 08:05 UTC = 10:05 в Париже летом
	now := time.Date(2024, time.July, 1, 8, 5, 0, 0, time.UTC)
	slots, err := g.Generate(monday, mondayMorningRule(), nil, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, availableTimes(slots))
}

func TestFindSlot(t *testing.T) {
	g := NewGenerator(Options{})
	slots, err := g.Generate(monday, mondayMorningRule(), nil, longAgo)
	require.NoError(t, err)

	slot, ok := FindSlot(slots, "10:30")
	require.True(t, ok)
	assert.True(t, slot.Available)

	_, ok = FindSlot(slots, "10:15")
	assert.False(t, ok)
	assert.Equal(t, 5, CountAvailable(slots))
}
