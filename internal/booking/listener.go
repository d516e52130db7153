package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the Postgres NOTIFY channel written by the bookings trigger.
const ChangeChannel = "booking_changes"

const (
	minListenBackoff = 500 * time.Millisecond
	maxListenBackoff = 30 * time.Second
)

// PgListener forwards NOTIFY payloads from the bookings trigger into a Hub, so writes
// made by any instance reach every live availability subscription.
type PgListener struct {
	pool   *pgxpool.Pool
	hub    *Hub
	logger *slog.Logger
}

func NewPgListener(pool *pgxpool.Pool, hub *Hub, logger *slog.Logger) *PgListener {
	return &PgListener{pool: pool, hub: hub, logger: logger.With("component", "booking_listener")}
}

// Run listens until ctx is cancelled, reconnecting with exponential backoff.
func (l *PgListener) Run(ctx context.Context) error {
	backoff := minListenBackoff
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.logger.WarnContext(ctx, "booking change listener disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxListenBackoff)
	}
}

func (l *PgListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangeChannel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", ChangeChannel, err)
	}
	defer func() {
		// The connection goes back to the pool; it must not keep receiving notifications.
		unlistenCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(unlistenCtx, "UNLISTEN *")
	}()
	l.logger.InfoContext(ctx, "listening for booking changes", "channel", ChangeChannel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		change, err := ParseChange(n.Payload)
		if err != nil {
			l.logger.ErrorContext(ctx, "discarding malformed booking change", "payload", n.Payload, "error", err)
			continue
		}
		l.hub.Publish(change)
	}
}

// ParseChange decodes a trigger payload.
func ParseChange(payload string) (Change, error) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Change{}, fmt.Errorf("decode booking change: %w", err)
	}
	switch c.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return Change{}, fmt.Errorf("unknown booking change op %q", c.Op)
	}
	if c.DateTime.IsZero() {
		return Change{}, errors.New("booking change without date_time")
	}
	return c, nil
}
