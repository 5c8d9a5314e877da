package booking

import "context"

// BookingRepository defines the persistence contract for booking
// aggregates. Implementations must keep exactly one canonical record
// per booking id and be safe under concurrent callers.
type BookingRepository interface {
	// Save upserts the full record by booking id. It must not fail on
	// bookings whose optional fields are unset.
	Save(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its unique identifier, or a
	// not-found error if no record exists.
	FindByID(ctx context.Context, id string) (*Booking, error)

	// FindByUserID retrieves every booking whose embedded client has
	// the given user id, in no specified order. Possibly empty.
	FindByUserID(ctx context.Context, userID string) ([]*Booking, error)

	// FindByUserEmail retrieves every booking whose embedded client has
	// the given email, in no specified order. Possibly empty.
	FindByUserEmail(ctx context.Context, userEmail string) ([]*Booking, error)

	// CountByState returns booking counts grouped by lifecycle state.
	CountByState(ctx context.Context) (map[string]int64, error)
}
