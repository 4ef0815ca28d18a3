package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher hands a message to whatever delivers it.
type Publisher interface {
	Publish(ctx context.Context, m Message) error
	Close() error
}

// LogPublisher only records the message. It is the default when no broker
// is configured; the admin still gets the link in the HTTP response.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p LogPublisher) Publish(_ context.Context, m Message) error {
	p.Logger.Info("notification ready",
		zap.String("kind", string(m.Kind)),
		zap.String("order_id", m.OrderID),
		zap.String("to", m.To),
		zap.String("link", m.Link),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

type KafkaConfig struct {
	Brokers    []string
	Topic      string
	MaxRetries int
}

// KafkaPublisher writes each message as JSON keyed by order id.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func NewKafkaPublisher(cfg KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		AllowAutoTopicCreation: true,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxRetries,
		WriteTimeout:           10 * time.Second,
	}
	logger.Info("kafka publisher created", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return &KafkaPublisher{writer: w, topic: cfg.Topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, m Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(m.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(m.Kind)},
		},
	})
	if err != nil {
		p.logger.Error("kafka publish failed", zap.String("order_id", m.OrderID), zap.Error(err))
		return err
	}

	p.logger.Debug("kafka message sent", zap.String("topic", p.topic), zap.String("order_id", m.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
