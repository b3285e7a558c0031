package queue

import "time"

// Config selects and configures the fan-out transport.
type Config struct {
	// Driver is inline, pubsub or kafka.
	Driver string `mapstructure:"driver" default:"inline"`
	// MaxAttempts bounds in-process redelivery for transports without server-side redelivery.
	MaxAttempts int `mapstructure:"max_attempts" default:"5"`
	// RetryBackoff is the initial delay between attempts; it doubles each time.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" default:"500ms"`

	PubSub PubSubConfig `mapstructure:"pubsub"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
}

// PubSubConfig configures Google Cloud Pub/Sub.
type PubSubConfig struct {
	ProjectID      string `mapstructure:"project_id" default:""`
	TopicID        string `mapstructure:"topic" default:"asset-sync-notifications"`
	SubscriptionID string `mapstructure:"subscription" default:"asset-sync-worker"`
	// OrderingKey is attached to every message so units are delivered in publish order.
	OrderingKey string `mapstructure:"ordering_key" default:"clct-order"`
	// Endpoint points at an emulator; it disables authentication and TLS.
	Endpoint string `mapstructure:"endpoint" default:""`
}

// KafkaConfig configures the Kafka writer and group reader.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" default:"localhost:9092"`
	Topic   string   `mapstructure:"topic" default:"asset-sync-notifications"`
	GroupID string   `mapstructure:"group_id" default:"asset-sync-worker"`
	// Key is the message key; a single key keeps all units on one partition.
	Key string `mapstructure:"key" default:"clct-order"`
}

func (c Config) attempts() int {
	if c.MaxAttempts <= 0 {
		return 1
	}
	return c.MaxAttempts
}

func (c Config) backoff(attempt int) time.Duration {
	base := c.RetryBackoff
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	return base << attempt
}
