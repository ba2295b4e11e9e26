package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// ChannelAdmin is the channel admins listen on for new orders.
const ChannelAdmin = "admin.notifications"

// EventOrderCreated is the name under which new orders are broadcast.
const EventOrderCreated = "OrderCreated"

// Event is the broadcast envelope.
type Event struct {
	Name  string           `json:"event"`
	Order model.OrderEvent `json:"order"`
}

// Broadcaster publishes events to named channels.
type Broadcaster interface {
	Publish(ctx context.Context, channel string, event Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBroadcaster publishes each channel to its own Kafka topic, keyed by
// order ID so events of one order stay ordered.
type KafkaBroadcaster struct {
	writer      messageWriter
	topicPrefix string
	logger      zerolog.Logger
}

// NewKafkaBroadcaster creates a broadcaster writing to the configured brokers.
func NewKafkaBroadcaster(cfg config.KafkaConfig, logger zerolog.Logger) *KafkaBroadcaster {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newKafkaBroadcaster(w, cfg.TopicPrefix, logger)
}

func newKafkaBroadcaster(w messageWriter, topicPrefix string, logger zerolog.Logger) *KafkaBroadcaster {
	return &KafkaBroadcaster{
		writer:      w,
		topicPrefix: topicPrefix,
		logger:      logger.With().Str("component", "kafka_broadcaster").Logger(),
	}
}

func (b *KafkaBroadcaster) Publish(ctx context.Context, channel string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Topic: b.topicPrefix + channel,
		Key:   []byte(event.Order.ID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Name)},
		},
	}

	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", event.Name, msg.Topic, err)
	}

	b.logger.Debug().
		Str("topic", msg.Topic).
		Str("event", event.Name).
		Str("order_id", event.Order.ID.String()).
		Msg("event published")
	return nil
}

func (b *KafkaBroadcaster) Close() error {
	return b.writer.Close()
}

// NopBroadcaster drops every event. It is used when Kafka is disabled.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(context.Context, string, Event) error { return nil }
func (NopBroadcaster) Close() error                                 { return nil }

// NewBroadcaster returns a Kafka broadcaster when Kafka is enabled,
// otherwise a no-op.
func NewBroadcaster(cfg config.KafkaConfig, logger zerolog.Logger) Broadcaster {
	if !cfg.Enabled {
		logger.Info().Msg("Kafka disabled, admin notifications will not be broadcast")
		return NopBroadcaster{}
	}
	return NewKafkaBroadcaster(cfg, logger)
}
