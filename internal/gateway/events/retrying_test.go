package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"service-courier-tracking/internal/apperr"
	"service-courier-tracking/internal/domain"
	"service-courier-tracking/internal/testutil/testlog"
)

type fakePublisher struct {
	fn func(context.Context, domain.StatusChange) error
}

func (f *fakePublisher) PublishStatus(ctx context.Context, c domain.StatusChange) error {
	return f.fn(ctx, c)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

func TestRetryingPublisher_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakePublisher{fn: func(context.Context, domain.StatusChange) error {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			return sarama.ErrOutOfBrokers
		case 2:
			return fmt.Errorf("send: %w", sarama.ErrLeaderNotAvailable)
		default:
			return nil
		}
	}}
	ctr := &counterStub{}
	p := NewRetryingPublisher(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})
	if p == nil {
		t.Fatalf("expected non-nil publisher")
	}

	if err := p.PublishStatus(context.Background(), domain.StatusChange{OrderID: 42}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if ctr.Count() != 2 {
		t.Fatalf("expected 2 retries, got %d", ctr.Count())
	}
	if !rec.HasEvent("status_publish_retry") {
		t.Fatalf("expected retry log")
	}
}

func TestRetryingPublisher_NoRetryOnPermanent(t *testing.T) {
	t.Parallel()

	for name, perm := range map[string]error{
		"invalid payload": fmt.Errorf("%w: marshal", apperr.ErrInvalid),
		"message too big": sarama.ErrMessageSizeTooLarge,
		"unknown":         errors.New("boom"),
	} {
		perm := perm
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var calls int32
			next := &fakePublisher{fn: func(context.Context, domain.StatusChange) error {
				atomic.AddInt32(&calls, 1)
				return perm
			}}
			ctr := &counterStub{}
			p := NewRetryingPublisher(next, testlog.New().Logger(), ctr, RetryConfig{MaxAttempts: 5})

			if err := p.PublishStatus(context.Background(), domain.StatusChange{}); !errors.Is(err, perm) {
				t.Fatalf("expected %v, got %v", perm, err)
			}
			if atomic.LoadInt32(&calls) != 1 {
				t.Fatalf("expected 1 call, got %d", calls)
			}
			if ctr.Count() != 0 {
				t.Fatalf("expected 0 retries, got %d", ctr.Count())
			}
		})
	}
}

func TestRetryingPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	next := &fakePublisher{fn: func(context.Context, domain.StatusChange) error {
		atomic.AddInt32(&calls, 1)
		return sarama.ErrNotConnected
	}}
	ctr := &counterStub{}
	p := NewRetryingPublisher(next, testlog.New().Logger(), ctr, RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	if err := p.PublishStatus(context.Background(), domain.StatusChange{}); !errors.Is(err, sarama.ErrNotConnected) {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if ctr.Count() != 2 {
		t.Fatalf("expected 2 retries, got %d", ctr.Count())
	}
}

func TestRetryingPublisher_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := &fakePublisher{fn: func(context.Context, domain.StatusChange) error {
		atomic.AddInt32(&calls, 1)
		cancel()
		return sarama.ErrOutOfBrokers
	}}
	p := NewRetryingPublisher(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})

	if err := p.PublishStatus(ctx, domain.StatusChange{}); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	base, max := 100*time.Millisecond, 350*time.Millisecond
	for attempt, want := range map[int]time.Duration{1: 100 * time.Millisecond, 2: 200 * time.Millisecond, 3: 350 * time.Millisecond} {
		if got := backoff(base, max, attempt); got != want {
			t.Fatalf("attempt %d: want %v, got %v", attempt, want, got)
		}
	}
}

func TestNewRetryingPublisher_NilNext(t *testing.T) {
	t.Parallel()

	if NewRetryingPublisher(nil, testlog.New().Logger(), nil, RetryConfig{}) != nil {
		t.Fatal("expected nil")
	}
}
