package booking

import "fmt"

// BookingState represents the current state of a booking in its lifecycle.
type BookingState string

const (
	StatePending         BookingState = "PENDING"
	StateConfirmed       BookingState = "CONFIRMED"
	StateRejected        BookingState = "REJECTED"
	StateCancelled       BookingState = "CANCELLED"
	StateUnavailableRoom BookingState = "UNAVAILABLE_ROOM"
)

// IsValid returns true if the state is a recognized booking state.
func (s BookingState) IsValid() bool {
	switch s {
	case StatePending, StateConfirmed, StateRejected, StateCancelled, StateUnavailableRoom:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are defined from
// this state. Note the engine still permits cancelling or rejecting a
// booking in a terminal state; the enum only classifies.
func (s BookingState) IsTerminal() bool {
	return s == StateCancelled || s == StateRejected
}

// String returns the string representation of the state.
func (s BookingState) String() string {
	return string(s)
}

// ParseBookingState converts a string to a BookingState, returning an
// error if the value is not recognized.
func ParseBookingState(s string) (BookingState, error) {
	state := BookingState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid booking state: %s", s)
	}
	return state, nil
}
