package availability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var (
	ErrOutsideHorizon = apperror.Validation("date is outside the booking window")
	ErrNotOnGrid      = apperror.Validation("time is not one of the studio's slots")
	ErrSlotElapsed    = apperror.Validation("slot has already started")
	ErrUpstream       = apperror.New(http.StatusServiceUnavailable, "availability could not be resolved")
)

const DefaultHorizonDays = 30

// BookingReader is the storage query availability is computed from.
type BookingReader interface {
	ListByDateRange(ctx context.Context, start, end time.Time, excludeStatus booking.Status) ([]*booking.Booking, error)
}

// ChangeFeed notifies about booking writes.
type ChangeFeed interface {
	Subscribe(fn func(booking.Change)) (unsubscribe func())
}

type Options struct {
	Grid               Grid
	// HorizonDays is how many days ahead of today can be booked.
	HorizonDays        int
	// ExcludeElapsed drops today's slots whose start time has passed.
	ExcludeElapsed     bool
	// OptimisticFallback makes Resolve return the whole grid, flagged Degraded,
	// when storage fails instead of an error.
	OptimisticFallback bool
	Now                func() time.Time
	Logger             *slog.Logger
}

// Availability partitions a day's grid. Available, Occupied and Elapsed are disjoint
// and together equal the grid, except in degraded mode where Occupied is unknown.
type Availability struct {
	Date      time.Time
	Available []string
	Occupied  []string
	Elapsed   []string
	Degraded  bool
}

type Resolver struct {
	bookings BookingReader
	feed     ChangeFeed
	opts     Options
	logger   *slog.Logger
}

func NewResolver(bookings BookingReader, feed ChangeFeed, opts Options) *Resolver {
	if len(opts.Grid) == 0 {
		opts.Grid = DefaultGrid()
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = DefaultHorizonDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		bookings: bookings,
		feed:     feed,
		opts:     opts,
		logger:   logger.With("component", "availability"),
	}
}

func (r *Resolver) Grid() Grid {
	return slices.Clone(r.opts.Grid)
}

// GetAvailableTimeSlots returns the bookable slot labels for date in grid order.
func (r *Resolver) GetAvailableTimeSlots(ctx context.Context, date time.Time) ([]string, error) {
	a, err := r.Resolve(ctx, date)
	if err != nil {
		return nil, err
	}
	return a.Available, nil
}

// Resolve computes the day's availability from the non-cancelled bookings on date.
func (r *Resolver) Resolve(ctx context.Context, date time.Time) (*Availability, error) {
	a, err := r.resolve(ctx, date)
	if err == nil || !r.opts.OptimisticFallback || !errors.Is(err, ErrUpstream) {
		return a, err
	}

	day, _ := booking.DayBounds(date)
	elapsed := r.elapsed(day)
	r.logger.WarnContext(ctx, "serving degraded availability", "date", day.Format(time.DateOnly), "error", err)
	return &Availability{
		Date:      day,
		Available: subtract(r.opts.Grid, elapsed),
		Occupied:  []string{},
		Elapsed:   elapsed,
		Degraded:  true,
	}, nil
}

func (r *Resolver) resolve(ctx context.Context, date time.Time) (*Availability, error) {
	day, end := booking.DayBounds(date)
	if err := r.checkHorizon(day); err != nil {
		return nil, err
	}

	bookings, err := r.bookings.ListByDateRange(ctx, day, end, booking.StatusCancelled)
	if err != nil {
		return nil, apperror.WithCause(ErrUpstream, err)
	}

	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		// The query already excludes them; storage implementations may not.
		if b.Status == booking.StatusCancelled {
			continue
		}
		label := b.SlotLabel()
		if !r.opts.Grid.Contains(label) {
			r.logger.DebugContext(ctx, "booking outside slot grid", "booking_id", b.ID, "slot", label)
			continue
		}
		taken[label] = struct{}{}
	}

	occupied := make([]string, 0, len(taken))
	for _, label := range r.opts.Grid {
		if _, ok := taken[label]; ok {
			occupied = append(occupied, label)
		}
	}

	elapsed := subtract(r.elapsed(day), occupied)
	return &Availability{
		Date:      day,
		Available: subtract(subtract(r.opts.Grid, occupied), elapsed),
		Occupied:  occupied,
		Elapsed:   elapsed,
	}, nil
}

// CheckBookable validates that t is a grid slot inside the horizon that has not started
// and is not occupied.
func (r *Resolver) CheckBookable(ctx context.Context, t time.Time) error {
	t = t.UTC()
	label := booking.SlotLabel(t)
	if t.Second() != 0 || t.Nanosecond() != 0 || !r.opts.Grid.Contains(label) {
		return ErrNotOnGrid
	}

	a, err := r.resolve(ctx, t)
	if err != nil {
		return err
	}
	switch {
	case slices.Contains(a.Occupied, label):
		return booking.ErrSlotTaken
	case slices.Contains(a.Elapsed, label):
		return ErrSlotElapsed
	}
	return nil
}

func (r *Resolver) today() time.Time {
	today, _ := booking.DayBounds(r.opts.Now())
	return today
}

func (r *Resolver) checkHorizon(day time.Time) error {
	today := r.today()
	if day.Before(today) || day.After(today.AddDate(0, 0, r.opts.HorizonDays)) {
		return ErrOutsideHorizon
	}
	return nil
}

// elapsed lists the grid slots of day that have already started; empty unless day is
// today and ExcludeElapsed is set.
func (r *Resolver) elapsed(day time.Time) []string {
	out := []string{}
	if !r.opts.ExcludeElapsed || !day.Equal(r.today()) {
		return out
	}
	now := r.opts.Now().UTC()
	for _, label := range r.opts.Grid {
		start, err := r.opts.Grid.At(day, label)
		if err != nil {
			continue
		}
		if !start.After(now) {
			out = append(out, label)
		}
	}
	return out
}

// subtract returns the labels of from not in remove, keeping from's order.
func subtract(from []string, remove []string) []string {
	out := make([]string, 0, len(from))
	for _, l := range from {
		if !slices.Contains(remove, l) {
			out = append(out, l)
		}
	}
	return out
}
