package repository

import (
	"context"
	"sync"
	"time"

	"github.com/arcn-hotels/service-booking/internal/domain"
	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
)

// MemoryBookingRepository is an in-memory implementation of the
// BookingRepository contract backed by a mutex-guarded map. Intended
// for development and tests; bookings do not survive a restart.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*bookingDomain.Booking
}

// NewMemoryBookingRepository creates an empty MemoryBookingRepository.
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]*bookingDomain.Booking),
	}
}

// Save upserts the booking by id. A copy is stored so later mutations
// of the caller's aggregate do not leak into the canonical record.
func (r *MemoryBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = copyBooking(bk)
	return nil
}

// FindByID retrieves a booking by id.
func (r *MemoryBookingRepository) FindByID(ctx context.Context, id string) (*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id)
	}
	return copyBooking(bk), nil
}

// FindByUserID retrieves every booking whose client has the given user
// id, in map-iteration order.
func (r *MemoryBookingRepository) FindByUserID(ctx context.Context, userID string) ([]*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*bookingDomain.Booking, 0)
	for _, bk := range r.bookings {
		if bk.Client().UserID == userID {
			result = append(result, copyBooking(bk))
		}
	}
	return result, nil
}

// FindByUserEmail retrieves every booking whose client has the given
// email, in map-iteration order.
func (r *MemoryBookingRepository) FindByUserEmail(ctx context.Context, userEmail string) ([]*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*bookingDomain.Booking, 0)
	for _, bk := range r.bookings {
		if bk.Client().UserEmail == userEmail {
			result = append(result, copyBooking(bk))
		}
	}
	return result, nil
}

// CountByState returns booking counts grouped by lifecycle state.
func (r *MemoryBookingRepository) CountByState(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.State())]++
	}
	return counts, nil
}

// overlapping reports the bookings for roomID in non-terminal states
// whose interval overlaps [start, finish). Used by the in-memory
// availability oracle.
func (r *MemoryBookingRepository) overlapping(roomID string, start, finish time.Time) []*bookingDomain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.RoomID() != roomID || bk.State().IsTerminal() {
			continue
		}
		if bk.StartDate().Before(finish) && start.Before(bk.FinishDate()) {
			result = append(result, copyBooking(bk))
		}
	}
	return result
}

func copyBooking(bk *bookingDomain.Booking) *bookingDomain.Booking {
	var refund *float64
	if bk.RefundAmount() != nil {
		v := *bk.RefundAmount()
		refund = &v
	}
	return bookingDomain.ReconstructBooking(
		bk.ID(),
		bk.CreatedDate(),
		bk.StartDate(),
		bk.FinishDate(),
		bk.RoomID(),
		bk.Client(),
		bk.State(),
		bk.Amount(),
		refund,
	)
}
