package app

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/gateway/events"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/realtime"
	"service-courier-tracking/internal/transport/kafka"
	"service-courier-tracking/internal/transport/rabbit"
)

// busMode says whether room events from other instances are delivered to
// connections of this process.
type busMode int

const (
	busFanIn busMode = iota
	busPublishOnly
)

// messagingCloser releases broker connections.
type messagingCloser func() error

func registerMessaging(container *dig.Container, mode busMode) error {
	return provideAll(container,
		func() busMode { return mode },
		newStatusProducer,
		newStatusPublisher,
		newRabbitConn,
		newRoomBus,
		newBroadcaster,
		newMessagingCloser,
	)
}

func newStatusProducer(cfg *config.Config) (*kafka.StatusProducer, error) {
	return kafka.NewStatusProducer(cfg.Kafka.Brokers, cfg.Kafka.StatusTopic)
}

type publisherIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Producer *kafka.StatusProducer
	Retries  prometheus.Counter `name:"event_publish_retries_total"`
}

// newStatusPublisher returns nil when Kafka is not configured.
func newStatusPublisher(in publisherIn) *events.RetryingPublisher {
	if in.Producer == nil {
		return nil
	}
	return events.NewRetryingPublisher(in.Producer, in.Logger, in.Retries, events.RetryConfig{
		MaxAttempts: in.Config.Publish.MaxAttempts,
		BaseDelay:   in.Config.Publish.BaseDelay,
		MaxDelay:    in.Config.Publish.MaxDelay,
	})
}

// newRabbitConn returns nil when RabbitMQ is not configured.
func newRabbitConn(ctx context.Context, cfg *config.Config, logger logx.Logger) (*rabbit.Conn, error) {
	if cfg.AMQP.URL == "" {
		return nil, nil
	}
	return rabbit.Dial(ctx, cfg.AMQP.URL, logger)
}

func newRoomBus(cfg *config.Config, conn *rabbit.Conn, hub *realtime.Hub, mode busMode, logger logx.Logger) (*rabbit.Bus, error) {
	if conn == nil {
		return nil, nil
	}
	var local realtime.Broadcaster
	if mode == busFanIn {
		local = hub
	}
	bus := rabbit.NewBus(conn.Channel(), cfg.AMQP.Exchange, local, logger)
	if err := bus.Declare(conn.Channel()); err != nil {
		return nil, err
	}
	return bus, nil
}

func newBroadcaster(hub *realtime.Hub, bus *rabbit.Bus) realtime.Broadcaster {
	if bus != nil {
		return bus
	}
	return hub
}

func newMessagingCloser(producer *kafka.StatusProducer, conn *rabbit.Conn) messagingCloser {
	return func() error {
		var errs []error
		if producer != nil {
			errs = append(errs, producer.Close())
		}
		if conn != nil {
			errs = append(errs, conn.Close())
		}
		return errors.Join(errs...)
	}
}
