package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcn-hotels/service-booking/internal/domain"
	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
	"github.com/arcn-hotels/service-booking/internal/events"
)

// ClientDTO is the wire representation of the booking client.
type ClientDTO struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	UserEmail      string `json:"user_email"`
	UserPersonalID int    `json:"user_personal_id"`
	Cellphone      int    `json:"cellphone"`
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID     string    `json:"room_id"`
	StartDate  time.Time `json:"start_date"`
	FinishDate time.Time `json:"finish_date"`
	Amount     float64   `json:"amount"`
	Client     ClientDTO `json:"client"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	BookingID    string    `json:"booking_id"`
	CreatedDate  time.Time `json:"created_date"`
	StartDate    time.Time `json:"start_date"`
	FinishDate   time.Time `json:"finish_date"`
	RoomID       string    `json:"room_id"`
	Client       ClientDTO `json:"client"`
	BookingState string    `json:"booking_state"`
	Amount       float64   `json:"amount"`
	RefundAmount *float64  `json:"refund_amount,omitempty"`
}

// BookingStatsDTO holds booking counts for the admin endpoint.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByState       map[string]int64 `json:"by_state"`
}

// EventPublisher publishes CloudEvents to a topic. Satisfied by
// *events.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event events.CloudEvent) error
}

// BookingService is the booking lifecycle engine. It validates input,
// consults the availability oracle, assigns identity and state, computes
// refunds and answers queries. All mutations re-read the current record
// and write back the full record.
type BookingService struct {
	repo     bookingDomain.BookingRepository
	oracle   bookingDomain.RoomAvailabilityOracle
	refunds  bookingDomain.RefundPolicy
	producer EventPublisher
	logger   *zap.Logger

	// roomLocks serializes the availability-check-and-save section per
	// room so two concurrent creations for the same room cannot both
	// pass the check.
	roomMu    sync.Mutex
	roomLocks map[string]*sync.Mutex
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	oracle bookingDomain.RoomAvailabilityOracle,
	refunds bookingDomain.RefundPolicy,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		oracle:    oracle,
		refunds:   refunds,
		producer:  producer,
		logger:    logger,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// CreateBooking validates the request, checks room availability and
// persists a new booking in PENDING state, returning its id.
//
// When the oracle reports the room taken, the in-flight aggregate is
// marked UNAVAILABLE_ROOM and a conflict error is returned without any
// durable side effect.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	bk, err := bookingDomain.NewBooking(
		req.RoomID,
		req.StartDate,
		req.FinishDate,
		req.Amount,
		toDomainClient(req.Client),
	)
	if err != nil {
		return "", err
	}

	unlock := s.lockRoom(req.RoomID)
	defer unlock()

	available, err := s.oracle.IsAvailable(ctx, bk.RoomID(), bk.StartDate(), bk.FinishDate())
	if err != nil {
		return "", fmt.Errorf("availability check failed: %w", err)
	}
	if !available {
		bk.MarkRoomUnavailable()
		return "", domain.NewConflictError("room is unavailable for the requested dates")
	}

	bk.Register(uuid.NewString(), time.Now().UTC())
	if err := s.repo.Save(ctx, bk); err != nil {
		return "", fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishEvent(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		UserID:     bk.Client().UserID,
		StartDate:  bk.StartDate(),
		FinishDate: bk.FinishDate(),
		Amount:     bk.Amount(),
		OccurredAt: time.Now().UTC(),
	})

	return bk.ID(), nil
}

// CancelBooking cancels the booking with the given id, computing the
// tiered refund from the lead time to the start date.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	if bookingID == "" {
		return nil, domain.NewValidationError("booking ID is required to cancel")
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	days := bookingDomain.LeadDays(time.Now().UTC(), bk.StartDate())
	refund := s.refunds.Refund(bk.Amount(), days)

	bk.Cancel(refund)
	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save cancelled booking: %w", err)
	}

	s.publishEvent(ctx, events.BookingCancelled, events.BookingCancelledEvent{
		BookingID:    bk.ID(),
		UserID:       bk.Client().UserID,
		RefundAmount: refund,
		OccurredAt:   time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// RejectBooking rejects the booking with the given id. No refund is
// computed and no other field is touched.
func (s *BookingService) RejectBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	if bookingID == "" {
		return nil, domain.NewValidationError("booking ID is required to reject")
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	bk.Reject()
	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save rejected booking: %w", err)
	}

	s.publishEvent(ctx, events.BookingRejected, events.BookingRejectedEvent{
		BookingID:  bk.ID(),
		UserID:     bk.Client().UserID,
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED. It is driven by
// the payment event consumer, not by the HTTP surface.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return domain.NewValidationError("booking ID is required to confirm")
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if bk.State() == bookingDomain.StateConfirmed {
		return nil // already confirmed, nothing to do
	}
	if bk.State() != bookingDomain.StatePending {
		return domain.NewConflictError(
			fmt.Sprintf("booking %s cannot be confirmed from state %s", bookingID, bk.State()),
		)
	}

	bk.Confirm()
	if err := s.repo.Save(ctx, bk); err != nil {
		return fmt.Errorf("failed to save confirmed booking: %w", err)
	}

	s.publishEvent(ctx, events.BookingConfirmed, events.BookingConfirmedEvent{
		BookingID:  bk.ID(),
		UserID:     bk.Client().UserID,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// GetBooking retrieves a single booking by id.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	if bookingID == "" {
		return nil, domain.NewValidationError("booking ID is required")
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingsByUserID retrieves every booking made by the given user.
func (s *BookingService) GetBookingsByUserID(ctx context.Context, userID string) ([]BookingDTO, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user ID is required")
	}

	bookings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by user ID: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// GetBookingsByUserEmail retrieves every booking made with the given
// client email.
func (s *BookingService) GetBookingsByUserEmail(ctx context.Context, userEmail string) ([]BookingDTO, error) {
	if userEmail == "" {
		return nil, domain.NewValidationError("user email is required")
	}

	bookings, err := s.repo.FindByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by user email: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// GetBookingStats returns aggregate booking counts by state (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByState:       counts,
	}, nil
}

// --- Helpers ---

// lockRoom acquires the per-room mutex, creating it on first use, and
// returns the unlock function.
func (s *BookingService) lockRoom(roomID string) func() {
	s.roomMu.Lock()
	mu, ok := s.roomLocks[roomID]
	if !ok {
		mu = &sync.Mutex{}
		s.roomLocks[roomID] = mu
	}
	s.roomMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toDomainClient(dto ClientDTO) bookingDomain.Client {
	return bookingDomain.Client{
		UserID:         dto.UserID,
		Name:           dto.Name,
		UserEmail:      dto.UserEmail,
		UserPersonalID: dto.UserPersonalID,
		Cellphone:      dto.Cellphone,
	}
}

func toClientDTO(c bookingDomain.Client) ClientDTO {
	return ClientDTO{
		UserID:         c.UserID,
		Name:           c.Name,
		UserEmail:      c.UserEmail,
		UserPersonalID: c.UserPersonalID,
		Cellphone:      c.Cellphone,
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		BookingID:    bk.ID(),
		CreatedDate:  bk.CreatedDate(),
		StartDate:    bk.StartDate(),
		FinishDate:   bk.FinishDate(),
		RoomID:       bk.RoomID(),
		Client:       toClientDTO(bk.Client()),
		BookingState: string(bk.State()),
		Amount:       bk.Amount(),
		RefundAmount: bk.RefundAmount(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
