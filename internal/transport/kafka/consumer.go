package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/service/orders"
)

// ErrPermanent marks handler errors that a redelivery cannot fix.
var ErrPermanent = errors.New("permanent")

// Permanent wraps err with ErrPermanent.
func Permanent(err error) error {
	if err == nil {
		return ErrPermanent
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// HandleFunc processes a single order event.
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

const consumeRetryDelay = time.Second

// Consumer feeds the orders topic into a HandleFunc through a consumer
// group. Every message is marked once handled, whatever the outcome:
// order events are upserts, and the next event for the order repairs a
// skipped one.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer returns nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = "service-courier-tracking"
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer group %s: %w", groupID, err)
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger.With(logx.String("topic", topic), logx.String("group", groupID)),
	}, nil
}

// Run joins the group and consumes until ctx is done. Session errors are
// logged and the group is rejoined.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	for {
		err := c.group.Consume(ctx, []string{c.topic}, c)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			continue
		}
		c.logger.Error("kafka consume error", logx.Event("kafka_consume_error"), logx.Err(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(consumeRetryDelay):
		}
	}
}

// Close leaves the group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

// Setup implements sarama.ConsumerGroupHandler.
func (c *Consumer) Setup(sess sarama.ConsumerGroupSession) error {
	c.logger.Info("kafka session started",
		logx.Event("kafka_session_started"),
		logx.String("member_id", sess.MemberID()),
	)
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler.
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim implements sarama.ConsumerGroupHandler.
func (c *Consumer) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		c.handle(sess.Context(), msg)
		sess.MarkMessage(msg, "")
	}
	return nil
}

func (c *Consumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) {
	log := c.logger.With(
		logx.Int("partition", int(msg.Partition)),
		logx.Int64("offset", msg.Offset),
	)

	ev, err := decodeEvent(msg.Value)
	if err != nil {
		log.Warn("kafka message dropped", logx.Event("kafka_bad_event"), logx.Err(err))
		return
	}

	err = c.handler(ctx, ev)
	switch {
	case err == nil:
	case errors.Is(err, ErrPermanent):
		log.Info("kafka event rejected",
			logx.Event("kafka_event_rejected"),
			logx.Int64("order_id", ev.OrderID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
	default:
		log.Warn("kafka handle failed, skipping message",
			logx.Event("kafka_handle_failed"),
			logx.Int64("order_id", ev.OrderID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
	}
}

func decodeEvent(value []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return orders.Event{}, fmt.Errorf("decode order event: %w", err)
	}
	if dto.OrderID <= 0 {
		return orders.Event{}, errors.New("order event without order_id")
	}
	return ToDomain(dto), nil
}

var _ sarama.ConsumerGroupHandler = (*Consumer)(nil)
