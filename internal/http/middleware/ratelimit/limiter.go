package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter lets everything through. Used when limiting is disabled.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped, 0 keeps them
	MaxBuckets int           // 0 means unbounded
}

// TokenBucketLimiter keeps one bucket per key. A new key arriving while
// MaxBuckets are tracked is denied unless an idle bucket can be evicted.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	nextSweep time.Time
}

type tokenBucket struct {
	tokens float64
	filled time.Time
}

// NewTokenBucketLimiter creates a limiter; zero Rate and Burst fall back to 1.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow takes one token from key's bucket.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now, false)

	b, ok := l.buckets[key]
	if !ok {
		if l.full() {
			l.sweep(now, true)
			if l.full() {
				return false
			}
		}
		b = &tokenBucket{tokens: float64(l.cfg.Burst), filled: now}
		l.buckets[key] = b
	}
	return b.take(now, l.cfg.Rate, float64(l.cfg.Burst))
}

// Len reports how many keys are tracked.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *TokenBucketLimiter) full() bool {
	return l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets
}

// sweep drops buckets idle for longer than TTL. Unless forced it runs at
// most once per max(TTL/2, 1m).
func (l *TokenBucketLimiter) sweep(now time.Time, force bool) {
	if l.cfg.TTL <= 0 {
		return
	}
	if !force && now.Before(l.nextSweep) {
		return
	}
	every := l.cfg.TTL / 2
	if every < time.Minute {
		every = time.Minute
	}
	l.nextSweep = now.Add(every)

	for k, b := range l.buckets {
		if now.Sub(b.filled) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}

func (b *tokenBucket) take(now time.Time, rate, burst float64) bool {
	if elapsed := now.Sub(b.filled); elapsed > 0 {
		b.tokens = min(burst, b.tokens+elapsed.Seconds()*rate)
	}
	b.filled = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
