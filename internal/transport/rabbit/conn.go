// Package rabbit carries room events between service instances over a
// RabbitMQ fanout exchange.
package rabbit

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"service-courier-tracking/internal/logx"
)

const (
	dialAttempts = 10
	dialMaxDelay = 30 * time.Second
)

// Conn is a RabbitMQ connection with one channel.
type Conn struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// Dial connects with retries. The delay starts at one second and grows by
// half on every failed attempt.
func Dial(ctx context.Context, url string, logger logx.Logger) (*Conn, error) {
	delay := time.Second
	var lastErr error

	for attempt := 1; attempt <= dialAttempts; attempt++ {
		c, err := dialOnce(url)
		if err == nil {
			logger.Info("rabbitmq connected", logx.Event("rabbitmq_connected"), logx.Int("attempt", attempt))
			return c, nil
		}
		lastErr = err
		logger.Warn("rabbitmq connection attempt failed",
			logx.Event("rabbitmq_connection_attempt_failed"),
			logx.Int("attempt", attempt),
			logx.Duration("retry_in", delay),
			logx.Err(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = min(time.Duration(float64(delay)*1.5), dialMaxDelay)
	}
	return nil, fmt.Errorf("connect rabbitmq after %d attempts: %w", dialAttempts, lastErr)
}

func dialOnce(url string) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Conn{conn: conn, ch: ch}, nil
}

// Channel returns the open channel.
func (c *Conn) Channel() *amqp.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ch
}

// Close closes the channel and the connection. It is safe to call twice.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.ch.Close()
	return c.conn.Close()
}
