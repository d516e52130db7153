package availability

import (
	"context"
	"sync"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
)

// memoryBookings is an in-memory BookingReader.
type memoryBookings struct {
	mu       sync.Mutex
	bookings []*booking.Booking
	err      error
	calls    int
	block    chan struct{} // when set, each query waits for a receive
	waiting  chan struct{} // signalled when a query starts waiting on block
}

func (m *memoryBookings) add(label string, day time.Time, status booking.Status) *booking.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, err := DefaultGrid().At(day, label)
	if err != nil {
		panic(err)
	}
	b := &booking.Booking{ID: label + "-" + string(status), DateTime: at, Status: status}
	m.bookings = append(m.bookings, b)
	return b
}

func (m *memoryBookings) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memoryBookings) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memoryBookings) ListByDateRange(ctx context.Context, start, end time.Time, excludeStatus booking.Status) ([]*booking.Booking, error) {
	m.mu.Lock()
	block, waiting := m.block, m.waiting
	m.mu.Unlock()
	if block != nil {
		if waiting != nil {
			waiting <- struct{}{}
		}
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []*booking.Booking
	for _, b := range m.bookings {
		if b.Status == excludeStatus || b.DateTime.Before(start) || b.DateTime.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
