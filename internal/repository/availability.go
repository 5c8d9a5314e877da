package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
)

// Lifecycle states that still occupy a room. Terminal bookings release
// their interval.
var occupyingStates = []string{
	string(bookingDomain.StatePending),
	string(bookingDomain.StateConfirmed),
}

// GormAvailabilityOracle answers room availability from the bookings
// table: a room is free for [start, finish) when no booking in an
// occupying state overlaps the interval. Candidate rows are locked so
// a concurrent creation that already passed its check cannot slip in
// between the query and the caller's save.
type GormAvailabilityOracle struct {
	db *gorm.DB
}

// NewGormAvailabilityOracle creates a new GormAvailabilityOracle.
func NewGormAvailabilityOracle(db *gorm.DB) *GormAvailabilityOracle {
	return &GormAvailabilityOracle{db: db}
}

// IsAvailable reports whether the room is free for [start, finish).
func (o *GormAvailabilityOracle) IsAvailable(ctx context.Context, roomID string, start, finish time.Time) (bool, error) {
	var candidates []BookingModel
	err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND state IN ?", roomID, occupyingStates).
		Where("start_date < ? AND finish_date > ?", finish, start).
		Limit(1).
		Find(&candidates).Error
	if err != nil {
		return false, fmt.Errorf("failed to check room availability: %w", err)
	}
	return len(candidates) == 0, nil
}

// MemoryAvailabilityOracle answers room availability from an in-memory
// repository using the same overlap rule as the GORM oracle.
type MemoryAvailabilityOracle struct {
	repo *MemoryBookingRepository
}

// NewMemoryAvailabilityOracle creates an oracle over the given
// in-memory repository.
func NewMemoryAvailabilityOracle(repo *MemoryBookingRepository) *MemoryAvailabilityOracle {
	return &MemoryAvailabilityOracle{repo: repo}
}

// IsAvailable reports whether the room is free for [start, finish).
func (o *MemoryAvailabilityOracle) IsAvailable(ctx context.Context, roomID string, start, finish time.Time) (bool, error) {
	return len(o.repo.overlapping(roomID, start, finish)) == 0, nil
}
