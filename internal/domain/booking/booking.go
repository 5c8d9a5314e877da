package booking

import (
	"time"

	"github.com/arcn-hotels/service-booking/internal/domain"
)

// Booking is the aggregate root for the booking domain: a client's
// reservation of a hotel room for a date interval.
//
// The aggregate carries no transition legality checks. The lifecycle
// engine in the application layer decides which mutation is applied
// when; the mutators below only record the outcome.
type Booking struct {
	id           string
	createdDate  time.Time
	startDate    time.Time
	finishDate   time.Time
	roomID       string
	client       Client
	state        BookingState
	amount       float64
	refundAmount *float64
}

// NewBooking builds a booking shell from validated creation input. The
// id, creation date and initial state are assigned later by the engine,
// after the room availability check has passed.
//
// Validation is fail-fast: client fields first, then dates, then the
// amount; the first violation aborts with a validation error.
func NewBooking(roomID string, startDate, finishDate time.Time, amount float64, client Client) (*Booking, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if startDate.IsZero() || finishDate.IsZero() {
		return nil, domain.NewValidationError("start and finish dates are required")
	}
	if !startDate.Before(finishDate) {
		return nil, domain.NewValidationError("start date must be strictly before finish date")
	}
	if amount < 0 {
		return nil, domain.NewValidationError("amount must not be negative")
	}

	return &Booking{
		roomID:     roomID,
		startDate:  startDate.UTC(),
		finishDate: finishDate.UTC(),
		amount:     amount,
		client:     client,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id string,
	createdDate time.Time,
	startDate, finishDate time.Time,
	roomID string,
	client Client,
	state BookingState,
	amount float64,
	refundAmount *float64,
) *Booking {
	return &Booking{
		id:           id,
		createdDate:  createdDate,
		startDate:    startDate,
		finishDate:   finishDate,
		roomID:       roomID,
		client:       client,
		state:        state,
		amount:       amount,
		refundAmount: refundAmount,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier, empty before registration.
func (b *Booking) ID() string { return b.id }

// CreatedDate returns the instant the booking was created.
func (b *Booking) CreatedDate() time.Time { return b.createdDate }

// StartDate returns the start of the booked stay.
func (b *Booking) StartDate() time.Time { return b.startDate }

// FinishDate returns the end of the booked stay.
func (b *Booking) FinishDate() time.Time { return b.finishDate }

// RoomID returns the identifier of the booked room, opaque to the core.
func (b *Booking) RoomID() string { return b.roomID }

// Client returns the client who made the booking.
func (b *Booking) Client() Client { return b.client }

// State returns the current lifecycle state.
func (b *Booking) State() BookingState { return b.state }

// Amount returns the charged total.
func (b *Booking) Amount() float64 { return b.amount }

// RefundAmount returns the refund computed on cancellation, or nil if
// the booking was never cancelled.
func (b *Booking) RefundAmount() *float64 { return b.refundAmount }

// --- Mutators ---

// Register assigns the server-generated identity, the creation instant
// and the initial PENDING state. Called exactly once, by the engine,
// after the availability check has passed.
func (b *Booking) Register(id string, createdAt time.Time) {
	b.id = id
	b.createdDate = createdAt.UTC()
	b.state = StatePending
}

// MarkRoomUnavailable records the failed-availability outcome on the
// in-flight aggregate. Bookings in this state are never persisted; the
// caller observes the failure only through the accompanying error.
func (b *Booking) MarkRoomUnavailable() {
	b.state = StateUnavailableRoom
}

// Cancel moves the booking to CANCELLED and records the refund.
func (b *Booking) Cancel(refundAmount float64) {
	b.state = StateCancelled
	b.refundAmount = &refundAmount
}

// Reject moves the booking to REJECTED. No refund is computed.
func (b *Booking) Reject() {
	b.state = StateRejected
}

// Confirm moves the booking to CONFIRMED.
func (b *Booking) Confirm() {
	b.state = StateConfirmed
}
