// Package kafka publishes outbox messages to the order events topic.
package kafka

import (
	"context"
	"strings"

	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Message headers carried next to the JSON payload.
const (
	HeaderEventName = "event-name"
	HeaderEventID   = "event-id"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher on top of kafka-go. Messages are
// keyed by order id so that all events of one order land on one partition in
// order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher builds a writer for brokersCSV ("host1:9092,host2:9092").
func NewPublisher(brokersCSV, topic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(splitBrokers(brokersCSV)...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes messages in one batch. kafka-go fails the whole batch or
// none of it from the caller's point of view, so the relay retries all of them.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(msg.AggregateID.String()),
			Value: msg.Payload,
			Time:  msg.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderEventName, Value: []byte(msg.Name)},
				{Key: HeaderEventID, Value: []byte(msg.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func splitBrokers(brokersCSV string) []string {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
