package ratelimit_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ModerationAI/modcore/pkg/infra/ratelimit"
)

func slidingWindowFixture(t *testing.T, limit int) (*ratelimit.SlidingWindow, redismock.ClientMock, time.Time, uuid.UUID) {
	client, mock := redismock.NewClientMock()
	now := time.Unix(1700000000, 0)
	id := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")

	window := ratelimit.NewSlidingWindow(client, limit, time.Minute, &ratelimit.SlidingWindowOpts{
		TimeProvider: func() time.Time { return now },
		UUIDProvider: func() uuid.UUID { return id },
	})
	return window, mock, now, id
}

func TestSlidingWindow_AdmitsUnderLimit(t *testing.T) {
	window, mock, now, id := slidingWindowFixture(t, 10)
	key := "admission:openai"
	windowStart := now.Add(-time.Minute).Unix()

	mock.ExpectZCount(key, strconv.FormatInt(windowStart, 10), strconv.FormatInt(now.Unix(), 10)).SetVal(3)

	member := strconv.FormatInt(now.Unix(), 10) + ":" + id.String()
	mock.ExpectTxPipeline()
	mock.ExpectZRemRangeByScore(key, "0", strconv.FormatInt(windowStart, 10)).SetVal(0)
	mock.ExpectZAdd(key, &redis.Z{Score: float64(now.Unix()), Member: member}).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	ok, err := window.TryAcquire(context.Background(), "openai")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlidingWindow_DeniesAtLimit(t *testing.T) {
	window, mock, now, _ := slidingWindowFixture(t, 10)
	key := "admission:openai"
	windowStart := now.Add(-time.Minute).Unix()

	mock.ExpectZCount(key, strconv.FormatInt(windowStart, 10), strconv.FormatInt(now.Unix(), 10)).SetVal(10)

	ok, err := window.TryAcquire(context.Background(), "openai")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlidingWindow_CountErrorSurfaces(t *testing.T) {
	window, mock, now, _ := slidingWindowFixture(t, 10)
	key := "admission:openai"
	windowStart := now.Add(-time.Minute).Unix()

	mock.ExpectZCount(key, strconv.FormatInt(windowStart, 10), strconv.FormatInt(now.Unix(), 10)).
		SetErr(redis.ErrClosed)

	_, err := window.TryAcquire(context.Background(), "openai")
	assert.Error(t, err)
}

func TestSlidingWindow_AcquireOrTimeoutDenies(t *testing.T) {
	window, mock, now, _ := slidingWindowFixture(t, 1)
	key := "admission:openai"
	windowStart := now.Add(-time.Minute).Unix()

	mock.ExpectZCount(key, strconv.FormatInt(windowStart, 10), strconv.FormatInt(now.Unix(), 10)).SetVal(1)

	// The injected clock is frozen, so the deadline check fails right
	// after the first denial.
	ok, err := window.AcquireOrTimeout(context.Background(), "openai", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
