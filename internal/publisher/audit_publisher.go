package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	log "github.com/sirupsen/logrus"
)

const flushTimeoutMs = 15 * 1000

// AuditPublisher writes catalog audit events to a Kafka topic, keyed by the
// entity so every change to one category or product lands in one partition.
// Publish only enqueues; delivery reports are drained in the background.
type AuditPublisher struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewAuditPublisher(bootstrapServers, topic string) (*AuditPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   bootstrapServers,
		"client.id":           domain.AuditServiceName,
		"acks":                "all",
		"delivery.timeout.ms": 30000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.WithField("topic", topic).Info("Audit Kafka producer created")

	pub := &AuditPublisher{producer: p, topic: topic, done: make(chan struct{})}
	go pub.drainEvents()
	return pub, nil
}

// drainEvents runs until the producer is closed and its Events channel
// closes with it.
func (p *AuditPublisher) drainEvents() {
	defer close(p.done)
	for e := range p.producer.Events() {
		if err := deliveryError(e); err != nil {
			log.WithError(err).Warn("Audit event was not delivered")
		}
	}
}

// deliveryError extracts a failure from a producer event. Events that are
// not failures yield nil.
func deliveryError(e kafka.Event) error {
	switch ev := e.(type) {
	case *kafka.Message:
		if ev.TopicPartition.Error != nil {
			return fmt.Errorf("delivery to %s failed for key %q: %w", topicName(ev.TopicPartition), ev.Key, ev.TopicPartition.Error)
		}
	case kafka.Error:
		if ev.IsFatal() {
			return ev
		}
		log.WithError(ev).Debug("Audit producer reported a transient error")
	}
	return nil
}

func topicName(tp kafka.TopicPartition) string {
	if tp.Topic == nil {
		return "unknown topic"
	}
	return *tp.Topic
}

func encodeEvent(event domain.AuditEvent) (*kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.Service == "" {
		event.Service = domain.AuditServiceName
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit event: %w", err)
	}

	return &kafka.Message{
		Key:   []byte(event.EntityID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}, nil
}

// Publish enqueues the event and returns without waiting for the broker.
// An error means the event never left this process.
func (p *AuditPublisher) Publish(ctx context.Context, event domain.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	msg.TopicPartition = kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}
	return nil
}

func (p *AuditPublisher) Close() {
	log.Info("Closing audit Kafka producer...")
	if remaining := p.producer.Flush(flushTimeoutMs); remaining > 0 {
		log.WithField("pending", remaining).Warn("Audit events left unflushed")
	}
	p.producer.Close()
	<-p.done
}
