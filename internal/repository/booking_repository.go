package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arcn-hotels/service-booking/internal/domain"
	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID           string          `gorm:"primaryKey;size:36"`
	CreatedDate  time.Time       `gorm:"not null"`
	StartDate    time.Time       `gorm:"not null;index:idx_bookings_room_interval"`
	FinishDate   time.Time       `gorm:"not null;index:idx_bookings_room_interval"`
	RoomID       string          `gorm:"not null;size:64;index:idx_bookings_room_interval,priority:1"`
	Client       json.RawMessage `gorm:"type:jsonb;not null"`
	UserID       string          `gorm:"not null;size:64;index"`
	UserEmail    string          `gorm:"not null;size:320;index"`
	State        string          `gorm:"not null;size:30;index"`
	Amount       float64         `gorm:"not null"`
	RefundAmount *float64        `gorm:""`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the
// BookingRepository contract.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save upserts the full booking record by id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUserID retrieves every booking made by the given user.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by user ID: %w", err)
	}
	return toDomainBookings(models)
}

// FindByUserEmail retrieves every booking made with the given email.
func (r *GormBookingRepository) FindByUserEmail(ctx context.Context, userEmail string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by user email: %w", err)
	}
	return toDomainBookings(models)
}

// CountByState returns booking counts grouped by lifecycle state.
func (r *GormBookingRepository) CountByState(ctx context.Context) (map[string]int64, error) {
	type stateCount struct {
		State string
		Count int64
	}
	var results []stateCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("state, count(*) as count").
		Group("state").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by state: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.State] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	clientJSON, err := json.Marshal(bk.Client())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal client: %w", err)
	}

	return &BookingModel{
		ID:           bk.ID(),
		CreatedDate:  bk.CreatedDate(),
		StartDate:    bk.StartDate(),
		FinishDate:   bk.FinishDate(),
		RoomID:       bk.RoomID(),
		Client:       clientJSON,
		UserID:       bk.Client().UserID,
		UserEmail:    bk.Client().UserEmail,
		State:        string(bk.State()),
		Amount:       bk.Amount(),
		RefundAmount: bk.RefundAmount(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var client bookingDomain.Client
	if err := json.Unmarshal(m.Client, &client); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client: %w", err)
	}

	state, err := bookingDomain.ParseBookingState(m.State)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.CreatedDate,
		m.StartDate,
		m.FinishDate,
		m.RoomID,
		client,
		state,
		m.Amount,
		m.RefundAmount,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
