package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SlidingWindow is a Redis-backed admission controller shared by
// multiple processes: one sorted set per provider holding request
// members scored by unix time, trimmed to the window on every acquire.
type SlidingWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
	newID  func() uuid.UUID
}

type SlidingWindowOpts struct {
	TimeProvider func() time.Time
	UUIDProvider func() uuid.UUID
}

func NewSlidingWindow(client *redis.Client, limit int, window time.Duration, opts *SlidingWindowOpts) *SlidingWindow {
	now := time.Now
	newID := uuid.New
	if opts != nil && opts.TimeProvider != nil {
		now = opts.TimeProvider
	}
	if opts != nil && opts.UUIDProvider != nil {
		newID = opts.UUIDProvider
	}
	return &SlidingWindow{
		client: client,
		limit:  limit,
		window: window,
		now:    now,
		newID:  newID,
	}
}

func (s *SlidingWindow) TryAcquire(ctx context.Context, providerID string) (bool, error) {
	key := "admission:" + providerID
	now := s.now()
	windowStart := now.Add(-s.window).Unix()

	count, err := s.client.ZCount(ctx, key,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count admission window: %w", err)
	}

	if count >= int64(s.limit) {
		return false, nil
	}

	member := fmt.Sprintf("%d:%s", now.Unix(), s.newID().String())
	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, &redis.Z{Score: float64(now.Unix()), Member: member})
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record admission: %w", err)
	}

	return true, nil
}

func (s *SlidingWindow) AcquireOrTimeout(ctx context.Context, providerID string, maxWait time.Duration) (bool, error) {
	deadline := s.now().Add(maxWait)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := s.TryAcquire(ctx, providerID)
		if err != nil || ok {
			return ok, err
		}
		if !s.now().Before(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}
