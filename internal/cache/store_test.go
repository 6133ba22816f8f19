package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis covers the four commands the store issues; everything else
// panics through the embedded nil interface.
type fakeRedis struct {
	redis.UniversalClient

	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Scan(_ context.Context, _ uint64, match string, _ int64) *redis.ScanCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.data))
	for k := range f.data {
		out = append(out, k)
	}
	return out
}

func TestGetOrFetchCachesPayload(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, time.Minute)

	var calls int32
	fetch := func(_ context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"items":[],"total":0}`), nil
	}

	first, err := store.GetOrFetch(context.Background(), "events", "p1", fetch)
	require.NoError(t, err)

	second, err := store.GetOrFetch(context.Background(), "events", "p1", fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must hit the cache")
}

func TestGetOrFetchDedupesConcurrentFetches(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, time.Minute)

	release := make(chan struct{})
	var calls int32
	fetch := func(_ context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte(`payload`), nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]byte, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.GetOrFetch(context.Background(), "events", "p1", fetch)
		}(i)
	}

	// Let every caller join the in-flight fetch before it returns.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent same-key fetches must collapse to one")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []byte(`payload`), results[i])
	}
}

func TestGetOrFetchFirstCallerContextFailsWaiters(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, time.Minute)

	started := make(chan struct{})
	var once sync.Once
	fetch := func(ctx context.Context) ([]byte, error) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ctx1, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	go func() {
		_, err := store.GetOrFetch(ctx1, "events", "p1", fetch)
		errs <- err
	}()
	<-started

	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	go func() {
		_, err := store.GetOrFetch(ctx2, "events", "p1", fetch)
		errs <- err
	}()

	// The fetch runs with the first caller's context: cancelling it
	// fails every waiter on the shared flight, their own contexts
	// notwithstanding.
	time.Sleep(20 * time.Millisecond)
	cancel()

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, <-errs, context.Canceled)
	}
}

func TestInvalidateDropsOnlyResourcePrefix(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, time.Minute)

	seed := func(resource, params string) {
		_, err := store.GetOrFetch(context.Background(), resource, params, func(_ context.Context) ([]byte, error) {
			return []byte(resource + ":" + params), nil
		})
		require.NoError(t, err)
	}
	seed("events", "p1")
	seed("events", "p2")
	seed("courses", "p1")

	require.Len(t, fake.keys(), 3)

	store.Invalidate(context.Background(), "events")

	remaining := fake.keys()
	require.Len(t, remaining, 1)
	assert.True(t, strings.HasPrefix(remaining[0], "listing:courses:"))

	// Re-invalidating an empty resource is a no-op.
	store.Invalidate(context.Background(), "events")
	assert.Len(t, fake.keys(), 1)
}
