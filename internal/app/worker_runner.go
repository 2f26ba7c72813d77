package app

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/service/orders"
	"service-courier-tracking/internal/transport/kafka"
)

var errNoConsumer = errors.New("kafka consumer is nil: set KAFKA_BROKERS for the worker")

// WorkerRunner runs the order ingest worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes order events until the container context is cancelled.
// Any other failure exits the process.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	if errors.Is(err, context.Canceled) {
		logger.Info("worker stopped", logx.Event("worker_stopped"))
		return
	}
	logger.Error("worker error", logx.Event("worker_failed"), logx.Err(err))
	exit(1)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic,
				makeOrdersKafka(p, cfg.Delivery.OperationTimeout))
		},
		newHealthServer,
	)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Health   *healthServer   `optional:"true"`
	Closer   messagingCloser `optional:"true"`
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return errNoConsumer
	}
	defer closeWorker(in.Pool, in.Logger, in.Consumer, in.Closer)

	if in.Health != nil {
		if err := in.Health.start(in.Logger); err != nil {
			return err
		}
		defer in.Health.stop()
	}

	in.Logger.Info("service-courier-worker started", logx.Event("worker_started"))
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer, closer messagingCloser) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	closeResources(pool, closer, logger)
}
