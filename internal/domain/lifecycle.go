package domain

import "fmt"

// transitions lists the legal status changes. Refused and cancelled are terminal.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRefused, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to another
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns ErrInvalidTransition if the change is not allowed
func Transition(from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s ReservationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Valid returns true for known statuses
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRefused, StatusCancelled:
		return true
	}
	return false
}

// ParseReservationStatus validates a status coming from the outside
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
	return status, nil
}

// ParseReservationKind validates a kind coming from the outside
func ParseReservationKind(s string) (ReservationKind, error) {
	switch kind := ReservationKind(s); kind {
	case KindStay, KindVisit:
		return kind, nil
	}
	return "", fmt.Errorf("unknown reservation kind %q", s)
}
