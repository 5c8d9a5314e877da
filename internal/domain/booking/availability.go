package booking

import (
	"context"
	"time"
)

// RoomAvailabilityOracle answers whether a room is free for a half-open
// interval [start, finish). It is an external collaborator of the
// lifecycle engine; a production implementation must consider every
// existing booking for the room in a non-terminal state and detect
// interval overlap.
type RoomAvailabilityOracle interface {
	IsAvailable(ctx context.Context, roomID string, start, finish time.Time) (bool, error)
}

// AlwaysAvailableOracle is the reference stub: every room is reported
// free for every interval.
type AlwaysAvailableOracle struct{}

// NewAlwaysAvailableOracle creates the stub oracle.
func NewAlwaysAvailableOracle() *AlwaysAvailableOracle {
	return &AlwaysAvailableOracle{}
}

// IsAvailable always reports the room as free.
func (AlwaysAvailableOracle) IsAvailable(ctx context.Context, roomID string, start, finish time.Time) (bool, error) {
	return true, nil
}
