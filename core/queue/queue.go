package queue

import (
	"context"
	"errors"
	"fmt"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"

	"go.uber.org/zap"
)

// Transport names.
const (
	DriverInline = "inline"
	DriverPubSub = "pubsub"
	DriverKafka  = "kafka"
)

// Delivery outcomes.
const (
	OutcomeAck     = "ack"
	OutcomeNack    = "nack"
	OutcomeDropped = "dropped"
)

// Handler processes one unit. Returning nil or a permanent error settles the delivery;
// any other error asks for redelivery.
type Handler func(ctx context.Context, unit notification.Notification) error

// Publisher hands split units to the transport in order.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, units []notification.Notification) error
	Close() error
}

// Consumer delivers units to a handler one at a time until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, handle Handler) error
	Close() error
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth redelivering.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// settle classifies a handler result into ack or nack and records it.
func settle(logger *zap.Logger, m *metrics.Metrics, transport string, err error) bool {
	switch {
	case err == nil:
		m.ObserveDelivery(transport, OutcomeAck)
		return true
	case IsPermanent(err):
		logger.Warn("Dropping unprocessable message", zap.String("transport", transport), zap.Error(err))
		m.ObserveDelivery(transport, OutcomeDropped)
		return true
	default:
		logger.Warn("Message processing failed, requesting redelivery", zap.String("transport", transport), zap.Error(err))
		m.ObserveDelivery(transport, OutcomeNack)
		return false
	}
}

// NewPublisher builds the configured publisher. The inline publisher runs handle directly.
func NewPublisher(ctx context.Context, cfg Config, handle Handler, logger *zap.Logger, m *metrics.Metrics) (Publisher, error) {
	switch cfg.Driver {
	case "", DriverInline:
		return NewInline(handle, logger, m), nil
	case DriverPubSub:
		return NewPubSubPublisher(ctx, cfg.PubSub)
	case DriverKafka:
		return NewKafkaPublisher(cfg.Kafka), nil
	default:
		return nil, fmt.Errorf("queue: unknown driver %q", cfg.Driver)
	}
}

// NewConsumer builds the configured consumer. The inline transport has none.
func NewConsumer(ctx context.Context, cfg Config, logger *zap.Logger, m *metrics.Metrics) (Consumer, error) {
	switch cfg.Driver {
	case DriverPubSub:
		return NewPubSubConsumer(ctx, cfg.PubSub, logger, m)
	case DriverKafka:
		return NewKafkaConsumer(cfg, logger, m), nil
	default:
		return nil, fmt.Errorf("queue: driver %q has no consumer", cfg.Driver)
	}
}
