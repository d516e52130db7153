package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	EventCreated       EventType = "booking.created"
	EventStatusChanged EventType = "booking.status_changed"
	EventDeleted       EventType = "booking.deleted"
)

// Event is published for the notification collaborator, which owns push delivery.
type Event struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	DateTime   time.Time `json:"date_time"`
	Status     Status    `json:"status"`
	Price      int       `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(t EventType, b *Booking) Event {
	return Event{
		Type:       t,
		BookingID:  b.ID,
		ClientID:   b.ClientID,
		DateTime:   b.DateTime,
		Status:     b.Status,
		Price:      b.Price,
		OccurredAt: time.Now().UTC(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish keys messages by booking id so one booking's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.BookingID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
