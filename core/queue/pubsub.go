package queue

import (
	"context"
	"errors"
	"fmt"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newPubSubClient(ctx context.Context, cfg PubSubConfig, opts ...option.ClientOption) (*pubsub.Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("queue: pubsub project id is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.Endpoint),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("queue: create pubsub client: %w", err)
	}
	return client, nil
}

// PubSubPublisher publishes units to a topic with message ordering enabled.
type PubSubPublisher struct {
	client      *pubsub.Client
	topic       *pubsub.Topic
	orderingKey string
}

// NewPubSubPublisher connects to the configured topic.
func NewPubSubPublisher(ctx context.Context, cfg PubSubConfig, opts ...option.ClientOption) (*PubSubPublisher, error) {
	client, err := newPubSubClient(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	p, err := NewPubSubTopicPublisher(client.Topic(cfg.TopicID), cfg.OrderingKey)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	p.client = client
	return p, nil
}

// NewPubSubTopicPublisher publishes to an existing topic handle.
func NewPubSubTopicPublisher(topic *pubsub.Topic, orderingKey string) (*PubSubPublisher, error) {
	if topic == nil {
		return nil, errors.New("queue: pubsub topic is required")
	}
	topic.EnableMessageOrdering = orderingKey != ""
	return &PubSubPublisher{topic: topic, orderingKey: orderingKey}, nil
}

// Name implements Publisher.
func (p *PubSubPublisher) Name() string { return DriverPubSub }

// Publish sends each unit and waits for the server id before sending the next.
func (p *PubSubPublisher) Publish(ctx context.Context, units []notification.Notification) error {
	for _, unit := range units {
		data, err := notification.Encode(unit)
		if err != nil {
			return fmt.Errorf("encode unit: %w", err)
		}

		result := p.topic.Publish(ctx, &pubsub.Message{
			Data:        data,
			OrderingKey: p.orderingKey,
		})
		if _, err := result.Get(ctx); err != nil {
			if p.orderingKey != "" {
				p.topic.ResumePublish(p.orderingKey)
			}
			return fmt.Errorf("publish unit: %w", err)
		}
	}
	return nil
}

// Close flushes pending messages and releases the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// PubSubConsumer pulls units from a subscription one at a time.
type PubSubConsumer struct {
	client  *pubsub.Client
	sub     *pubsub.Subscription
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewPubSubConsumer connects to the configured subscription.
func NewPubSubConsumer(ctx context.Context, cfg PubSubConfig, logger *zap.Logger, m *metrics.Metrics, opts ...option.ClientOption) (*PubSubConsumer, error) {
	client, err := newPubSubClient(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	c := NewPubSubSubscriptionConsumer(client.Subscription(cfg.SubscriptionID), logger, m)
	c.client = client
	return c, nil
}

// NewPubSubSubscriptionConsumer consumes an existing subscription handle.
func NewPubSubSubscriptionConsumer(sub *pubsub.Subscription, logger *zap.Logger, m *metrics.Metrics) *PubSubConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	sub.ReceiveSettings.MaxOutstandingMessages = 1
	return &PubSubConsumer{sub: sub, logger: logger, metrics: m}
}

// Consume blocks until ctx is cancelled. Undecodable messages are acked and dropped.
func (c *PubSubConsumer) Consume(ctx context.Context, handle Handler) error {
	err := c.sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		unit, err := notification.DecodeEnvelope(msg.Data)
		if err != nil {
			err = Permanent(err)
		} else {
			err = handle(ctx, unit)
		}

		if settle(c.logger.With(zap.String("message_id", msg.ID)), c.metrics, DriverPubSub, err) {
			msg.Ack()
		} else {
			msg.Nack()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("receive: %w", err)
	}
	return nil
}

// Close releases the client.
func (c *PubSubConsumer) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
