package booking

import (
	"sync"
	"time"
)

type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
)

// Change describes one write to the bookings table.
type Change struct {
	Op           ChangeOp   `json:"op"`
	BookingID    string     `json:"id"`
	DateTime     time.Time  `json:"date_time"`
	PrevDateTime *time.Time `json:"old_date_time,omitempty"`
}

// Touches reports whether the change affects bookings on day's UTC calendar date,
// either where the booking is now or where it was before a reschedule.
func (c Change) Touches(day time.Time) bool {
	start, end := DayBounds(day)
	within := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}
	if within(c.DateTime) {
		return true
	}
	return c.PrevDateTime != nil && within(*c.PrevDateTime)
}

// Hub fans booking changes out to in-process subscribers.
// Subscribers are called synchronously from Publish and must not block.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(Change)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func(Change))}
}

// Subscribe registers fn and returns a function that detaches it. Calling the returned
// function more than once is safe.
func (h *Hub) Subscribe(fn func(Change)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(c Change) {
	h.mu.RLock()
	fns := make([]func(Change), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
