package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BookingConfirmer is the slice of the lifecycle engine the payment
// consumer needs: confirming a pending booking once its payment has
// been captured.
type BookingConfirmer interface {
	ConfirmBooking(ctx context.Context, bookingID string) error
}

// PaymentEventConsumer listens to payment events and drives the
// external confirmation workflow. It is the only writer of the
// CONFIRMED state.
type PaymentEventConsumer struct {
	consumer *Consumer
	service  BookingConfirmer
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(brokers []string, groupID string, service BookingConfirmer, logger *zap.Logger) *PaymentEventConsumer {
	consumer := NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context
// is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentCaptured:
		return c.handlePaymentCaptured(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentCaptured(ctx context.Context, cloudEvent CloudEvent) error {
	var evt PaymentCapturedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentCapturedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment captured event",
		zap.String("booking_id", evt.BookingID),
		zap.String("payment_id", evt.PaymentID),
	)

	if err := c.service.ConfirmBooking(ctx, evt.BookingID); err != nil {
		c.logger.Error("failed to confirm booking after payment capture",
			zap.String("booking_id", evt.BookingID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking confirmed after payment capture",
		zap.String("booking_id", evt.BookingID),
	)
	return nil
}
