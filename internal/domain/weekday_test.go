package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

func TestWeekdayOf(t *testing.T) {
	// 2024-07-01 понедельник
	start := types.NewDate(2024, time.July, 1)
	want := []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

	for i, w := range want {
		assert.Equal(t, w, WeekdayOf(start.AddDays(i)))
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{"1", Monday, false},
		{"7", Sunday, false},
		{"Saturday", Saturday, false},
		{" samedi ", Saturday, false},
		{"LUNDI", Monday, false},
		{"thu", Thursday, false},
		{"0", WeekdayUnknown, true},
		{"8", WeekdayUnknown, true},
		{"someday", WeekdayUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayJSON(t *testing.T) {
	var days []Weekday
	require.NoError(t, json.Unmarshal([]byte(`[6, "sunday", "vendredi"]`), &days))
	assert.Equal(t, []Weekday{Saturday, Sunday, Friday}, days)

	out, err := json.Marshal(days)
	require.NoError(t, err)
	assert.JSONEq(t, `[6, 7, 5]`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`[9]`), &days))
	assert.Equal(t, "unknown", Weekday(42).String())
}
