package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var (
	// 08:30 UTC on 2026-10-17; no slot of today has started yet.
	testNow  = time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
)

func newTestResolver(store *memoryBookings, opts Options) (*Resolver, *booking.Hub) {
	hub := booking.NewHub()
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return NewResolver(store, hub, opts), hub
}

func TestGetAvailableTimeSlots(t *testing.T) {
	tests := []struct {
		name     string
		bookings map[string]booking.Status
		want     []string
	}{
		{
			name:     "No bookings, full grid available",
			bookings: nil,
			want:     DefaultSlots,
		},
		{
			name:     "Confirmed booking occupies its slot",
			bookings: map[string]booking.Status{"11:00": booking.StatusConfirmed},
			want:     []string{"10:00", "12:00", "14:00", "15:00", "16:00", "17:00"},
		},
		{
			name:     "Cancelled booking frees its slot",
			bookings: map[string]booking.Status{"11:00": booking.StatusCancelled},
			want:     DefaultSlots,
		},
		{
			name: "Pending and completed bookings occupy",
			bookings: map[string]booking.Status{
				"10:00": booking.StatusPending,
				"17:00": booking.StatusCompleted,
			},
			want: []string{"11:00", "12:00", "14:00", "15:00", "16:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryBookings{}
			for label, status := range tt.bookings {
				store.add(label, tomorrow, status)
			}
			r, _ := newTestResolver(store, Options{})

			got, err := r.GetAvailableTimeSlots(context.Background(), tomorrow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Partition(t *testing.T) {
	statuses := []booking.Status{
		booking.StatusPending, booking.StatusConfirmed, booking.StatusCompleted, booking.StatusCancelled,
	}
	store := &memoryBookings{}
	for i, label := range DefaultSlots {
		store.add(label, tomorrow, statuses[i%len(statuses)])
	}
	// Another booking on the same slot, cancelled, plus one on a different day.
	store.add("10:00", tomorrow, booking.StatusCancelled)
	store.add("14:00", tomorrow.AddDate(0, 0, 1), booking.StatusConfirmed)

	r, _ := newTestResolver(store, Options{})
	a, err := r.Resolve(context.Background(), tomorrow)
	require.NoError(t, err)

	assert.ElementsMatch(t, DefaultSlots, append(append([]string{}, a.Available...), a.Occupied...))
	for _, label := range a.Available {
		assert.NotContains(t, a.Occupied, label)
	}
	// 14:00 is cancelled here and only confirmed on the following day.
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "15:00", "16:00", "17:00"}, a.Occupied)
	assert.Equal(t, []string{"14:00"}, a.Available)
	assert.Empty(t, a.Elapsed)
	assert.False(t, a.Degraded)
}

func TestResolve_IgnoresOffGridBookings(t *testing.T) {
	store := &memoryBookings{}
	store.bookings = append(store.bookings, &booking.Booking{
		ID:       "odd",
		DateTime: tomorrow.Add(13 * time.Hour),
		Status:   booking.StatusConfirmed,
	})
	r, _ := newTestResolver(store, Options{})

	a, err := r.Resolve(context.Background(), tomorrow)
	require.NoError(t, err)
	assert.Equal(t, DefaultSlots, a.Available)
	assert.Empty(t, a.Occupied)
}

func TestResolve_Horizon(t *testing.T) {
	r, _ := newTestResolver(&memoryBookings{}, Options{HorizonDays: 30})
	ctx := context.Background()

	_, err := r.Resolve(ctx, testNow.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrOutsideHorizon)

	_, err = r.Resolve(ctx, testNow.AddDate(0, 0, 31))
	assert.ErrorIs(t, err, ErrOutsideHorizon)

	_, err = r.Resolve(ctx, testNow.AddDate(0, 0, 30))
	assert.NoError(t, err)

	_, err = r.Resolve(ctx, testNow)
	assert.NoError(t, err)
}

func TestResolve_ElapsedSlots(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := &memoryBookings{}
	store.add("11:00", now, booking.StatusConfirmed)
	store.add("15:00", now, booking.StatusConfirmed)

	t.Run("Excluded", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{ExcludeElapsed: true, Now: func() time.Time { return now }})
		a, err := r.Resolve(context.Background(), now)
		require.NoError(t, err)

		assert.Equal(t, []string{"14:00", "16:00", "17:00"}, a.Available)
		assert.Equal(t, []string{"11:00", "15:00"}, a.Occupied)
		// A slot starting exactly now counts as started.
		assert.Equal(t, []string{"10:00", "12:00"}, a.Elapsed)
		assert.ElementsMatch(t, DefaultSlots, append(append(append([]string{}, a.Available...), a.Occupied...), a.Elapsed...))
	})

	t.Run("Kept", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{ExcludeElapsed: false, Now: func() time.Time { return now }})
		a, err := r.Resolve(context.Background(), now)
		require.NoError(t, err)

		assert.Equal(t, []string{"10:00", "12:00", "14:00", "16:00", "17:00"}, a.Available)
		assert.Empty(t, a.Elapsed)
	})

	t.Run("Only today", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{ExcludeElapsed: true, Now: func() time.Time { return now }})
		a, err := r.Resolve(context.Background(), now.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, DefaultSlots, a.Available)
	})
}

func TestResolve_UpstreamFailure(t *testing.T) {
	store := &memoryBookings{err: errors.New("connection refused")}

	t.Run("Error by default", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{})
		_, err := r.Resolve(context.Background(), tomorrow)
		require.ErrorIs(t, err, ErrUpstream)
		assert.True(t, apperror.IsRetryable(err))

		_, err = r.GetAvailableTimeSlots(context.Background(), tomorrow)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("Degraded fallback", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{OptimisticFallback: true})
		a, err := r.Resolve(context.Background(), tomorrow)
		require.NoError(t, err)
		assert.True(t, a.Degraded)
		assert.Equal(t, DefaultSlots, a.Available)
		assert.Empty(t, a.Occupied)
	})

	t.Run("Fallback does not hide validation errors", func(t *testing.T) {
		r, _ := newTestResolver(store, Options{OptimisticFallback: true})
		_, err := r.Resolve(context.Background(), tomorrow.AddDate(1, 0, 0))
		assert.ErrorIs(t, err, ErrOutsideHorizon)
	})
}

func TestCheckBookable(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC)
	store := &memoryBookings{}
	store.add("15:00", now, booking.StatusConfirmed)
	store.add("16:00", now, booking.StatusCancelled)
	r, _ := newTestResolver(store, Options{ExcludeElapsed: true, Now: func() time.Time { return now }})
	ctx := context.Background()

	at := func(hour, minute int) time.Time {
		return time.Date(2026, 10, 17, hour, minute, 0, 0, time.UTC)
	}

	assert.NoError(t, r.CheckBookable(ctx, at(14, 0)))
	assert.NoError(t, r.CheckBookable(ctx, at(16, 0)), "cancelled slot is free again")
	assert.ErrorIs(t, r.CheckBookable(ctx, at(15, 0)), booking.ErrSlotTaken)
	assert.ErrorIs(t, r.CheckBookable(ctx, at(11, 0)), ErrSlotElapsed)
	assert.ErrorIs(t, r.CheckBookable(ctx, at(13, 0)), ErrNotOnGrid)
	assert.ErrorIs(t, r.CheckBookable(ctx, at(14, 15)), ErrNotOnGrid)
	assert.ErrorIs(t, r.CheckBookable(ctx, at(14, 0).Add(time.Second)), ErrNotOnGrid)
	assert.ErrorIs(t, r.CheckBookable(ctx, at(14, 0).AddDate(0, 2, 0)), ErrOutsideHorizon)

	// Other time zones are normalized to UTC.
	istanbul := time.FixedZone("TRT", 3*60*60)
	assert.NoError(t, r.CheckBookable(ctx, time.Date(2026, 10, 17, 17, 0, 0, 0, istanbul)))
}

func TestCheckBookable_NoFallback(t *testing.T) {
	store := &memoryBookings{err: errors.New("timeout")}
	r, _ := newTestResolver(store, Options{OptimisticFallback: true})

	err := r.CheckBookable(context.Background(), tomorrow.Add(10*time.Hour))
	assert.ErrorIs(t, err, ErrUpstream)
}
