// Package kafka publishes application events to a Kafka topic so external
// consumers (analytics, notifications, partner apps) can follow the order
// flow without touching the realtime hub.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"foodgo/internal/core/application/events"
	"foodgo/internal/pkg/errs"
)

// envelope is the wire format on the topic: the event name, its routing
// channels and the event's own payload.
type envelope struct {
	Event    string          `json:"event"`
	Channels []string        `json:"channels"`
	Data     json.RawMessage `json:"data"`
}

// Publisher implements ports.EventPublisher on top of a sarama SyncProducer.
// All events go to a single topic, keyed by their first routing channel so
// per-order and per-partner streams stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a synchronous producer to the given brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, errs.NewExternalServiceError("kafka", err)
	}

	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer wraps an existing producer; used by tests.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// Publish sends each event to the topic. Failures surface as
// errs.ExternalServiceError; callers decide whether that is fatal.
func (p *Publisher) Publish(_ context.Context, evts ...events.Event) error {
	messages := make([]*sarama.ProducerMessage, 0, len(evts))

	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}

		value, err := json.Marshal(envelope{
			Event:    evt.Name(),
			Channels: evt.Channels(),
			Data:     payload,
		})
		if err != nil {
			return err
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(evt.Channels()[0]),
			Value: sarama.ByteEncoder(value),
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return errs.NewExternalServiceError("kafka", err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
