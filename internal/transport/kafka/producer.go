package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
)

var newSyncProducer = sarama.NewSyncProducer

// StatusProducer publishes status changes keyed by order id, so the events
// of one order stay in one partition.
type StatusProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewStatusProducer returns nil when Kafka is not configured.
func NewStatusProducer(brokers []string, topic string) (*StatusProducer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Timeout = 5 * time.Second
	cfg.Producer.Retry.Max = 0

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &StatusProducer{producer: p, topic: topic}, nil
}

// PublishStatus sends one status event.
func (p *StatusProducer) PublishStatus(_ context.Context, change domain.StatusChange) error {
	value, err := json.Marshal(FromStatusChange(change))
	if err != nil {
		return fmt.Errorf("%w: marshal status event: %w", apperr.ErrInvalid, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(change.OrderID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send status event for order %d: %w", change.OrderID, err)
	}
	return nil
}

// Close closes the producer.
func (p *StatusProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
