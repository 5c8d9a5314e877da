package booking

import "time"

// RefundPolicy defines the interface for computing the refund owed when
// a booking is cancelled.
type RefundPolicy interface {
	// Refund returns the refund for the given charged amount and lead
	// time in whole days between the cancellation instant and the
	// booking's start date. daysToStart may be negative when the stay
	// has already started.
	Refund(amount float64, daysToStart int64) float64
}

// StandardRefundPolicy implements the tiered refund schedule.
//
// Refund schedule by lead time D in whole days:
//   - D <= 3: 100% of the amount
//   - 3 < D <= 7: 20% of the amount
//   - D > 7: 100% of the amount
//
// The middle band refunds less than both shorter and longer lead times.
// That shape is intentional here in the sense that it reproduces the
// billing rules this service was built against; changing it is a product
// decision, not a bug fix.
type StandardRefundPolicy struct{}

// NewStandardRefundPolicy creates a new StandardRefundPolicy.
func NewStandardRefundPolicy() *StandardRefundPolicy {
	return &StandardRefundPolicy{}
}

// Refund computes the tiered refund for the given amount and lead time.
func (p *StandardRefundPolicy) Refund(amount float64, daysToStart int64) float64 {
	switch {
	case daysToStart <= 3:
		return amount
	case daysToStart <= 7:
		return amount * 0.2
	default:
		return amount
	}
}

// LeadDays returns the whole days between now and start, truncated
// toward zero. The result is negative once the start date has passed;
// no clamping is applied.
func LeadDays(now, start time.Time) int64 {
	return int64(start.Sub(now) / (24 * time.Hour))
}
