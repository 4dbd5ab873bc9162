package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shareit-app/shareit/internal/kafka"
)

// NotificationConsumer listens to booking events and emits user-facing
// notifications. Delivery is currently a structured log line; the consumer
// is the seam where a mail or push gateway plugs in.
type NotificationConsumer struct {
	consumer *kafka.Consumer
	logger   *zap.Logger
}

// NewNotificationConsumer creates a NotificationConsumer on booking.events.
func NewNotificationConsumer(brokers []string, groupID string, logger *zap.Logger) *NotificationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &NotificationConsumer{
		consumer: consumer,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *NotificationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *NotificationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case BookingCreated:
		return c.notifyCreated(cloudEvent)
	case BookingApproved, BookingRejected, BookingCancelled:
		return c.notifyDecided(cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *NotificationConsumer) notifyCreated(cloudEvent kafka.CloudEvent) error {
	var evt BookingCreatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse BookingCreatedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("notify owner of new booking request",
		zap.String("owner_id", evt.OwnerID.String()),
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("item_id", evt.ItemID.String()),
		zap.Time("start", evt.Start),
	)
	return nil
}

func (c *NotificationConsumer) notifyDecided(cloudEvent kafka.CloudEvent) error {
	var evt BookingDecidedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse BookingDecidedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("notify booker of booking decision",
		zap.String("booker_id", evt.BookerID.String()),
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("status", evt.Status),
	)
	return nil
}
