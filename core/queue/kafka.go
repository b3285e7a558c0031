package queue

import (
	"context"
	"fmt"
	"time"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes units to a topic under a single key.
type KafkaPublisher struct {
	writer kafkaWriter
	key    []byte
}

// NewKafkaPublisher creates a writer for the configured topic.
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			RequiredAcks: kafka.RequireOne,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
		key: []byte(cfg.Key),
	}
}

// Name implements Publisher.
func (p *KafkaPublisher) Name() string { return DriverKafka }

// Publish writes all units in one ordered batch.
func (p *KafkaPublisher) Publish(ctx context.Context, units []notification.Notification) error {
	if len(units) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(units))
	for _, unit := range units {
		data, err := notification.Encode(unit)
		if err != nil {
			return fmt.Errorf("encode unit: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: p.key, Value: data})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write units: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// KafkaConsumer reads units through a consumer group and commits each one after it settles.
type KafkaConsumer struct {
	reader  kafkaReader
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewKafkaConsumer creates a group reader for the configured topic.
func NewKafkaConsumer(cfg Config, logger *zap.Logger, m *metrics.Metrics) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		Topic:       cfg.Kafka.Topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		StartOffset: kafka.FirstOffset,
	})
	return newKafkaConsumer(reader, cfg, logger, m)
}

func newKafkaConsumer(reader kafkaReader, cfg Config, logger *zap.Logger, m *metrics.Metrics) *KafkaConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaConsumer{reader: reader, cfg: cfg, logger: logger, metrics: m, sleep: sleepCtx}
}

// Consume blocks until ctx is cancelled. Kafka has no per-message redelivery, so a
// retryable failure is retried in place with backoff up to MaxAttempts and then dropped.
func (c *KafkaConsumer) Consume(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("Kafka fetch failed", zap.Error(err))
			if err := c.sleep(ctx, c.cfg.backoff(0)); err != nil {
				return nil
			}
			continue
		}

		c.process(ctx, msg, handle)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Kafka commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *KafkaConsumer) process(ctx context.Context, msg kafka.Message, handle Handler) {
	logger := c.logger.With(zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

	unit, err := notification.DecodeEnvelope(msg.Value)
	if err != nil {
		settle(logger, c.metrics, DriverKafka, Permanent(err))
		return
	}

	attempts := c.cfg.attempts()
	for attempt := 0; attempt < attempts; attempt++ {
		if settle(logger, c.metrics, DriverKafka, handle(ctx, unit)) {
			return
		}
		if attempt+1 < attempts {
			if err := c.sleep(ctx, c.cfg.backoff(attempt)); err != nil {
				return
			}
		}
	}
	logger.Error("Giving up on message after retries", zap.Int("attempts", attempts))
	c.metrics.ObserveDelivery(DriverKafka, OutcomeDropped)
}

// Close closes the reader.
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
