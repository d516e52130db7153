package availability

import (
	"context"
	"sync"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
)

// UpdateFunc receives each fresh resolution of a subscribed date, or the error that
// prevented one.
type UpdateFunc func(a *Availability, err error)

type subscription struct {
	resolver *Resolver
	date     time.Time
	fn       UpdateFunc
	ctx      context.Context
	cancel   context.CancelFunc
	detach   func()
	dirty    chan struct{}

	mu     sync.Mutex
	closed bool
}

// Subscribe resolves date once immediately and again after every booking change that
// touches it, passing each result to fn. Changes arriving while a resolution is running
// are coalesced into one follow-up resolution. fn is never called concurrently.
//
// The subscription lasts until the returned unsubscribe is called or ctx ends. Once
// unsubscribe returns, fn will not be called again. unsubscribe must not be called
// from inside fn; cancel ctx instead.
func (r *Resolver) Subscribe(ctx context.Context, date time.Time, fn UpdateFunc) (unsubscribe func(), err error) {
	day, _ := booking.DayBounds(date)
	if err := r.checkHorizon(day); err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	s := &subscription{
		resolver: r,
		date:     day,
		fn:       fn,
		ctx:      subCtx,
		cancel:   cancel,
		dirty:    make(chan struct{}, 1),
	}
	s.detach = sync.OnceFunc(r.feed.Subscribe(func(c booking.Change) {
		if c.Touches(day) {
			s.markDirty()
		}
	}))
	s.markDirty()

	go s.run()

	r.logger.DebugContext(ctx, "availability subscription started", "date", day.Format(time.DateOnly))
	var once sync.Once
	return func() {
		once.Do(s.close)
	}, nil
}

func (s *subscription) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
		// A resolution is already pending and will observe this change.
	}
}

func (s *subscription) run() {
	defer s.detach()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.dirty:
			a, err := s.resolver.Resolve(s.ctx, s.date)
			if s.ctx.Err() != nil {
				return
			}
			s.deliver(a, err)
		}
	}
}

func (s *subscription) deliver(a *Availability, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.fn(a, err)
}

// close detaches from the feed and waits out any in-flight delivery.
func (s *subscription) close() {
	s.detach()
	s.cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
