package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is an in-process admission controller: per-provider
// buckets refilled at per-minute and per-hour rates, with a burst cap.
type TokenBucket struct {
	requestsPerMinute int
	requestsPerHour   int
	burstSize         int
	now               func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokensMinute float64
	tokensHour   float64
	lastUpdate   time.Time
}

type TokenBucketOpts struct {
	TimeProvider func() time.Time
}

func NewTokenBucket(requestsPerMinute, requestsPerHour, burstSize int, opts *TokenBucketOpts) *TokenBucket {
	now := time.Now
	if opts != nil && opts.TimeProvider != nil {
		now = opts.TimeProvider
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	if burstSize <= 0 {
		burstSize = 10
	}
	return &TokenBucket{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		burstSize:         burstSize,
		now:               now,
		buckets:           make(map[string]*bucket),
	}
}

func (t *TokenBucket) TryAcquire(_ context.Context, providerID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b := t.bucketFor(providerID)
	t.refill(b)

	if b.tokensMinute >= 1 && b.tokensHour >= 1 {
		b.tokensMinute--
		b.tokensHour--
		return true, nil
	}
	return false, nil
}

// AcquireOrTimeout polls for a token until maxWait elapses or the
// context is canceled. Cancellation releases nothing: tokens are only
// consumed on a successful acquire.
func (t *TokenBucket) AcquireOrTimeout(ctx context.Context, providerID string, maxWait time.Duration) (bool, error) {
	deadline := t.now().Add(maxWait)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := t.TryAcquire(ctx, providerID)
		if err != nil || ok {
			return ok, err
		}
		if !t.now().Before(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (t *TokenBucket) bucketFor(providerID string) *bucket {
	b, ok := t.buckets[providerID]
	if !ok {
		b = &bucket{
			tokensMinute: float64(t.burstSize),
			tokensHour:   float64(t.burstSize),
			lastUpdate:   t.now(),
		}
		t.buckets[providerID] = b
	}
	return b
}

func (t *TokenBucket) refill(b *bucket) {
	now := t.now()
	elapsed := now.Sub(b.lastUpdate).Seconds()
	if elapsed <= 0 {
		return
	}
	b.lastUpdate = now

	b.tokensMinute += elapsed * float64(t.requestsPerMinute) / 60.0
	if b.tokensMinute > float64(t.burstSize) {
		b.tokensMinute = float64(t.burstSize)
	}
	b.tokensHour += elapsed * float64(t.requestsPerHour) / 3600.0
	if b.tokensHour > float64(t.burstSize) {
		b.tokensHour = float64(t.burstSize)
	}
}
