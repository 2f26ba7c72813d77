// Package events publishes committed status changes to other services.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/logx"
)

type publisher interface {
	PublishStatus(ctx context.Context, change domain.StatusChange) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behaviour of RetryingPublisher.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingPublisher retries transient broker failures with exponential
// backoff.
type RetryingPublisher struct {
	next    publisher
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingPublisher returns nil when next is nil.
func NewRetryingPublisher(next publisher, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingPublisher {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingPublisher{next: next, logger: logger, retries: retries, cfg: cfg}
}

// PublishStatus publishes change, retrying while the error is transient.
func (p *RetryingPublisher) PublishStatus(ctx context.Context, change domain.StatusChange) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		err := p.next.PublishStatus(ctx, change)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == p.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(p.cfg.BaseDelay, p.cfg.MaxDelay, attempt)
		if p.retries != nil {
			p.retries.Inc()
		}
		p.logger.Warn("status publish retry",
			logx.Event("status_publish_retry"),
			logx.Int64("order_id", change.OrderID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, context.Canceled) {
		return false
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		switch kerr {
		case sarama.ErrNotLeaderForPartition,
			sarama.ErrLeaderNotAvailable,
			sarama.ErrRequestTimedOut,
			sarama.ErrNotEnoughReplicas,
			sarama.ErrNotEnoughReplicasAfterAppend,
			sarama.ErrNetworkException:
			return true
		default:
			return false
		}
	}
	return errors.Is(err, sarama.ErrOutOfBrokers) ||
		errors.Is(err, sarama.ErrNotConnected) ||
		errors.Is(err, context.DeadlineExceeded)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
