package events

import (
	"context"

	"squadly/pkg/kafka"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

const (
	source = "squadly-api"

	// schemaVersion is bumped when an event payload changes shape, so
	// consumers can route old and new payloads apart.
	schemaVersion = "1"

	TypeBookingApproved  = "booking.approved"
	TypePaymentCompleted = "payment.completed"
)

// Publisher emits lifecycle events for downstream consumers (notifications,
// reporting). Publishing is best-effort: failures are logged, never surfaced
// to the request.
type Publisher interface {
	BookingApproved(ctx context.Context, booking *model.Booking)
	PaymentCompleted(ctx context.Context, payment *model.Payment)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingApproved(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingApproved, booking.ID, booking)
}

func (p *kafkaPublisher) PaymentCompleted(ctx context.Context, payment *model.Payment) {
	p.publish(ctx, TypePaymentCompleted, payment.BookingID, payment)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithEventType(eventType).
		WithSource(source).
		WithSchemaVersion(schemaVersion).
		WithValue(payload).
		Build()
	if err != nil {
		p.log.Error("Failed to build lifecycle event", "event_type", eventType, "key", key, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish lifecycle event", "event_type", eventType, "key", key, "error", err)
		return
	}

	p.log.Debug("Lifecycle event published", "event_type", eventType, "key", key)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingApproved(context.Context, *model.Booking)  {}
func (noopPublisher) PaymentCompleted(context.Context, *model.Payment) {}
