package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/realtime"
)

const (
	originHeader   = "origin"
	publishTimeout = 5 * time.Second
)

//go:generate mockgen -source=bus.go -destination=rabbit_mocks_test.go -package=rabbit

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type topology interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Bus is a realtime.Broadcaster that delivers to the local rooms and
// republishes to every other instance through a fanout exchange. Events an
// instance published itself are not delivered twice.
type Bus struct {
	pub      publisher
	exchange string
	origin   string
	local    realtime.Broadcaster
	logger   logx.Logger
}

// NewBus returns a bus. local may be nil for processes without
// connections of their own.
func NewBus(pub publisher, exchange string, local realtime.Broadcaster, logger logx.Logger) *Bus {
	return &Bus{
		pub:      pub,
		exchange: exchange,
		origin:   uuid.NewString(),
		local:    local,
		logger:   logger,
	}
}

// Declare creates the fanout exchange if it does not exist.
func (b *Bus) Declare(ch topology) error {
	if err := ch.ExchangeDeclare(b.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", b.exchange, err)
	}
	return nil
}

// Broadcast delivers ev locally, then publishes it.
func (b *Bus) Broadcast(ctx context.Context, room string, ev realtime.Event) error {
	ev.Room = room

	var localErr error
	if b.local != nil {
		localErr = b.local.Broadcast(ctx, room, ev)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Join(localErr, fmt.Errorf("marshal room event: %w", err))
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = b.pub.PublishWithContext(pubCtx, b.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   ev.Timestamp,
		Type:        string(ev.Type),
		Headers:     amqp.Table{originHeader: b.origin},
		Body:        body,
	})
	if err != nil {
		return errors.Join(localErr, fmt.Errorf("publish room event to %q: %w", b.exchange, err))
	}
	return localErr
}

// Subscribe binds an exclusive auto-delete queue to the exchange.
func (b *Bus) Subscribe(ch topology) (<-chan amqp.Delivery, error) {
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue %q: %w", q.Name, err)
	}
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %q: %w", q.Name, err)
	}
	return msgs, nil
}

// Run hands events published by other instances to the local rooms until
// ctx is done or msgs is closed.
func (b *Bus) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	b.logger.Info("room bus consumer started", logx.Event("room_bus_started"), logx.String("exchange", b.exchange))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("room bus delivery channel closed")
			}
			b.deliver(ctx, d)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, d amqp.Delivery) {
	if origin, _ := d.Headers[originHeader].(string); origin == b.origin {
		return
	}
	if b.local == nil {
		return
	}

	var ev realtime.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.Room == "" {
		b.logger.Warn("room bus bad message",
			logx.Event("room_bus_bad_message"),
			logx.String("message_id", d.MessageId),
			logx.Err(err),
		)
		return
	}
	if err := b.local.Broadcast(ctx, ev.Room, ev); err != nil {
		b.logger.Warn("room bus delivery failed",
			logx.Event("room_bus_delivery_failed"),
			logx.String("room", ev.Room),
			logx.Err(err),
		)
	}
}
