package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRefused, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRefused, false},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusRefused, StatusConfirmed, false},
		{StatusRefused, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))

			err := Transition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRefused.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseReservationStatusAndKind(t *testing.T) {
	status, err := ParseReservationStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseReservationStatus("in_progress")
	assert.Error(t, err)

	kind, err := ParseReservationKind("visit")
	assert.NoError(t, err)
	assert.Equal(t, KindVisit, kind)

	_, err = ParseReservationKind("booking")
	assert.Error(t, err)
}

func TestReasonCode(t *testing.T) {
	wrapped := fmt.Errorf("%w: 2 nights, at least 3", ErrStayTooShort)
	assert.Equal(t, ReasonStayTooShort, ReasonCode(wrapped))
	assert.True(t, IsRuleViolation(wrapped))

	assert.Equal(t, ReasonOverlapAtConfirmation, ReasonCode(ErrOverlapAtConfirmation))
	assert.Equal(t, "", ReasonCode(ErrInvalidTransition))
	assert.False(t, IsRuleViolation(fmt.Errorf("db down")))
}
