package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcn-hotels/service-booking/internal/domain"
	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
)

func seedBooking(t *testing.T, id, roomID string, start, finish time.Time, state bookingDomain.BookingState) *bookingDomain.Booking {
	t.Helper()
	return bookingDomain.ReconstructBooking(
		id,
		time.Now().UTC(),
		start,
		finish,
		roomID,
		bookingDomain.Client{
			UserID:         "u-1",
			Name:           "Alice Moreno",
			UserEmail:      "alice@example.com",
			UserPersonalID: 987654,
			Cellphone:      5550110,
		},
		state,
		100,
		nil,
	)
}

func TestMemoryRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	bk := seedBooking(t, "b-1", "room-12", start, start.Add(48*time.Hour), bookingDomain.StatePending)
	require.NoError(t, repo.Save(ctx, bk))

	got, err := repo.FindByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID())
	assert.Equal(t, "room-12", got.RoomID())
	assert.Equal(t, bookingDomain.StatePending, got.State())

	// Mutating the returned copy must not leak into the stored record.
	got.Cancel(100)
	again, err := repo.FindByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatePending, again.State())
}

func TestMemoryRepository_SaveUpserts(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	bk := seedBooking(t, "b-1", "room-12", start, start.Add(48*time.Hour), bookingDomain.StatePending)
	require.NoError(t, repo.Save(ctx, bk))

	bk.Cancel(20)
	require.NoError(t, repo.Save(ctx, bk))

	got, err := repo.FindByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StateCancelled, got.State())
	require.NotNil(t, got.RefundAmount())
	assert.Equal(t, float64(20), *got.RefundAmount())
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryBookingRepository()

	_, err := repo.FindByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestMemoryRepository_UserQueries(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-1", "room-1", start, start.Add(24*time.Hour), bookingDomain.StatePending)))
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-2", "room-2", start, start.Add(24*time.Hour), bookingDomain.StateConfirmed)))

	byUser, err := repo.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byEmail, err := repo.FindByUserEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	empty, err := repo.FindByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	empty, err = repo.FindByUserEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryRepository_CountByState(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-1", "room-1", start, start.Add(24*time.Hour), bookingDomain.StatePending)))
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-2", "room-2", start, start.Add(24*time.Hour), bookingDomain.StatePending)))
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-3", "room-3", start, start.Add(24*time.Hour), bookingDomain.StateCancelled)))

	counts, err := repo.CountByState(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[string(bookingDomain.StatePending)])
	assert.Equal(t, int64(1), counts[string(bookingDomain.StateCancelled)])
}

func TestMemoryAvailabilityOracle(t *testing.T) {
	repo := NewMemoryBookingRepository()
	oracle := NewMemoryAvailabilityOracle(repo)
	ctx := context.Background()

	day := 24 * time.Hour
	base := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-1", "room-12", base, base.Add(3*day), bookingDomain.StatePending)))

	tests := []struct {
		name   string
		roomID string
		start  time.Time
		finish time.Time
		want   bool
	}{
		{"identical interval", "room-12", base, base.Add(3 * day), false},
		{"straddles the start", "room-12", base.Add(-day), base.Add(day), false},
		{"straddles the finish", "room-12", base.Add(2 * day), base.Add(5 * day), false},
		{"fully contained", "room-12", base.Add(day), base.Add(2 * day), false},
		{"abuts the finish", "room-12", base.Add(3 * day), base.Add(5 * day), true},
		{"abuts the start", "room-12", base.Add(-2 * day), base, true},
		{"different room", "room-13", base, base.Add(3 * day), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, err := oracle.IsAvailable(ctx, tt.roomID, tt.start, tt.finish)
			require.NoError(t, err)
			assert.Equal(t, tt.want, available)
		})
	}
}

func TestMemoryAvailabilityOracle_IgnoresTerminalStates(t *testing.T) {
	repo := NewMemoryBookingRepository()
	oracle := NewMemoryAvailabilityOracle(repo)
	ctx := context.Background()

	day := 24 * time.Hour
	base := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-1", "room-12", base, base.Add(3*day), bookingDomain.StateCancelled)))
	require.NoError(t, repo.Save(ctx, seedBooking(t, "b-2", "room-12", base, base.Add(3*day), bookingDomain.StateRejected)))

	available, err := oracle.IsAvailable(ctx, "room-12", base, base.Add(3*day))

	require.NoError(t, err)
	assert.True(t, available, "cancelled and rejected stays do not occupy the room")
}

func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("b-%d", n)
			bk := seedBooking(t, id, "room-12", start, start.Add(24*time.Hour), bookingDomain.StatePending)
			assert.NoError(t, repo.Save(ctx, bk))
			_, err := repo.FindByID(ctx, id)
			assert.NoError(t, err)
			_, err = repo.FindByUserID(ctx, "u-1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	counts, err := repo.CountByState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(32), counts[string(bookingDomain.StatePending)])
}
