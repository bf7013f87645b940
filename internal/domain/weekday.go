package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// ErrInvalidWeekday is returned when a weekday cannot be parsed
var ErrInvalidWeekday = errors.New("invalid weekday")

// Weekday is an ISO weekday (Monday=1 .. Sunday=7). The zero value is WeekdayUnknown.
type Weekday int

const (
	WeekdayUnknown Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"unknown", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Accepted spellings at the boundary. French names come from the public site forms.
var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday, "lundi": Monday,
	"tue": Tuesday, "tuesday": Tuesday, "mardi": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday, "mercredi": Wednesday,
	"thu": Thursday, "thursday": Thursday, "jeudi": Thursday,
	"fri": Friday, "friday": Friday, "vendredi": Friday,
	"sat": Saturday, "saturday": Saturday, "samedi": Saturday,
	"sun": Sunday, "sunday": Sunday, "dimanche": Sunday,
}

// WeekdayOf returns the weekday of a calendar date
func WeekdayOf(d types.Date) Weekday {
	return FromTimeWeekday(d.Weekday())
}

// FromTimeWeekday converts time.Weekday (Sunday=0) to Weekday
func FromTimeWeekday(w time.Weekday) Weekday {
	if w == time.Sunday {
		return Sunday
	}
	return Weekday(w)
}

// ParseWeekday accepts an ISO number ("1".."7") or an English/French day name
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if n, err := strconv.Atoi(s); err == nil {
		w := Weekday(n)
		if !w.Valid() {
			return WeekdayUnknown, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
		}
		return w, nil
	}

	if w, ok := weekdayAliases[s]; ok {
		return w, nil
	}
	return WeekdayUnknown, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// Valid returns true for Monday..Sunday
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if w < WeekdayUnknown || w > Sunday {
		return weekdayNames[WeekdayUnknown]
	}
	return weekdayNames[w]
}

// MarshalJSON writes the ISO number
func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(w))
}

// UnmarshalJSON accepts either the ISO number or a day name
func (w *Weekday) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed := Weekday(n)
		if !parsed.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, n)
		}
		*w = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidWeekday, string(data))
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ContainsWeekday reports whether w is in list
func ContainsWeekday(list []Weekday, w Weekday) bool {
	for _, item := range list {
		if item == w {
			return true
		}
	}
	return false
}
