package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"konica/pkg/logger"
)

const sourceName = "konica-backend"

// Publisher wraps a kafka-go writer. A nil *Publisher is valid and drops
// every event, which is how deployments without Kafka run.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	mu     sync.Mutex
	closed bool
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	if len(brokers) == 0 {
		log.Info("Kafka publishing disabled, no brokers configured")
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key by reservation ID for per-reservation ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Kafka reservation event publisher initialized",
		"brokers", brokers,
		"topic", topic,
	)

	return &Publisher{writer: writer, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.Unlock()

	value, err := event.MarshalPayload()
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSource, Value: []byte(sourceName)},
			{Key: HeaderTimestamp, Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
