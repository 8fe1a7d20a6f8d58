package policycache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/infra/storage/memory"
	"github.com/m04kA/bookit/pkg/logger"
)

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	failAll bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewSliceResult(nil, errors.New("connection refused"))
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			out[i] = v
		}
	}
	return redis.NewSliceResult(out, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingRepo struct {
	Repository
	gets int
}

func (c *countingRepo) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	c.gets++
	return c.Repository.Get(ctx)
}

func TestCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepo{Repository: memory.NewPolicyRepository()}
	cache := New(inner, newFakeRedis(), time.Minute, logger.Discard())

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	_, err = cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
}

func TestCache_MutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepo{Repository: memory.NewPolicyRepository()}
	cache := New(inner, newFakeRedis(), time.Minute, logger.Discard())
	slot := domain.Slot{Date: "2024-07-04", Time: "09:00"}

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	added, err := cache.AddUnavailableTime(ctx, slot)
	require.NoError(t, err)
	require.True(t, added)

	policy, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{slot}, policy.UnavailableTimes)
	assert.Equal(t, 2, inner.gets)

	yes := true
	_, err = cache.Patch(ctx, domain.PolicyPatch{AutoConfirm: &yes})
	require.NoError(t, err)

	policy, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, policy.AutoConfirm)
	assert.Equal(t, []domain.Slot{slot}, policy.UnavailableTimes)

	require.NoError(t, cache.RemoveUnavailableTime(ctx, slot))
	policy, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, policy.UnavailableTimes)
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.failAll = true
	cache := New(memory.NewPolicyRepository(), client, time.Minute, logger.Discard())

	added, err := cache.AddUnavailableTime(ctx, domain.Slot{Date: "2024-07-04", Time: "09:00"})
	require.NoError(t, err)
	assert.True(t, added)

	policy, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, policy.UnavailableTimes, 1)
}

// slowReadRepo выполняет onRead после чтения из хранилища, до заполнения кэша
type slowReadRepo struct {
	Repository
	onRead func()
}

func (r *slowReadRepo) Get(ctx context.Context) (*domain.BookingPolicy, error) {
	policy, err := r.Repository.Get(ctx)
	if r.onRead != nil {
		hook := r.onRead
		r.onRead = nil
		hook()
	}
	return policy, err
}

func TestCache_WriteDuringMissIsNotMaskedByLateFill(t *testing.T) {
	ctx := context.Background()
	inner := &slowReadRepo{Repository: memory.NewPolicyRepository()}
	cache := New(inner, newFakeRedis(), 0, logger.Discard())
	slot := domain.Slot{Date: "2024-07-04", Time: "09:00"}

	inner.onRead = func() {
		added, err := cache.AddUnavailableTime(ctx, slot)
		require.NoError(t, err)
		require.True(t, added)
	}

	before, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, before.IsUnavailable(slot), "the read started before the write")

	after, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, after.IsUnavailable(slot))

	cached, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cached.IsUnavailable(slot))
}

func TestCache_EntryOfOldGenerationIsIgnored(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	inner := &countingRepo{Repository: memory.NewPolicyRepository()}
	cache := New(inner, client, time.Minute, logger.Discard())

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	stale := client.data[DefaultKey]

	yes := true
	_, err = cache.Patch(ctx, domain.PolicyPatch{AutoConfirm: &yes})
	require.NoError(t, err)

	client.data[DefaultKey] = stale

	policy, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, policy.AutoConfirm)
	assert.Equal(t, 2, inner.gets)
}
