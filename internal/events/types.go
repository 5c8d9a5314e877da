package events

import "time"

// Topics used by the booking service.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types published on booking.events.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingRejected  = "booking.rejected"
	BookingConfirmed = "booking.confirmed"
)

// Event types consumed from payment.events.
const (
	PaymentCaptured = "payment.captured"
)

// BookingCreatedEvent is published after a booking is persisted in
// PENDING state.
type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	FinishDate time.Time `json:"finish_date"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published after a cancellation, carrying the
// refund the tiered policy granted.
type BookingCancelledEvent struct {
	BookingID    string    `json:"booking_id"`
	UserID       string    `json:"user_id"`
	RefundAmount float64   `json:"refund_amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// BookingRejectedEvent is published after a rejection.
type BookingRejectedEvent struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published once the payment-driven workflow
// confirms a pending booking.
type BookingConfirmedEvent struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentCapturedEvent is the payment.events payload that triggers
// booking confirmation.
type PaymentCapturedEvent struct {
	PaymentID  string    `json:"payment_id"`
	BookingID  string    `json:"booking_id"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
