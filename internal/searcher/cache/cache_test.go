package cache

import (
	"context"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/metrics"
)

type fakeKV struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	v, ok := f.data[key]
	if !ok {
		return nil, goredis.Nil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	f.data[key] = value.([]byte)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) FlushByPattern(_ context.Context, pattern string) (int64, error) {
	var n int64
	for k := range f.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

var sample = []ranker.ScoredDoc{{DocID: "a.txt", Score: 265}, {DocID: "b.txt", Score: 0}}

func TestGetOrCompute_MissThenHit(t *testing.T) {
	kv := newFakeKV()
	m := metrics.New()
	c := New(kv, time.Minute, m)
	ctx := context.Background()

	calls := 0
	compute := func() ([]ranker.ScoredDoc, error) {
		calls++
		return sample, nil
	}

	got, hit, err := c.GetOrCompute(ctx, "fp1", "cat", 5, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, sample, got)

	got, hit, err = c.GetOrCompute(ctx, "fp1", "cat", 5, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sample, got)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))
	for _, ttl := range kv.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestGetOrCompute_FingerprintSeparatesCorpora(t *testing.T) {
	c := New(newFakeKV(), 0, metrics.New())
	ctx := context.Background()
	c.Set(ctx, "old", "cat", 5, sample)

	_, ok := c.Get(ctx, "new", "cat", 5)
	assert.False(t, ok)
	_, ok = c.Get(ctx, "old", "cat", 3)
	assert.False(t, ok)
	_, ok = c.Get(ctx, "old", "cat", 5)
	assert.True(t, ok)
}

func TestGetOrCompute_ComputeError(t *testing.T) {
	kv := newFakeKV()
	c := New(kv, 0, metrics.New())
	_, _, err := c.GetOrCompute(context.Background(), "fp", "q", 5, func() ([]ranker.ScoredDoc, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
	assert.Empty(t, kv.data)
}

func TestGet_BackendErrorIsMiss(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = errors.New("connection reset")
	m := metrics.New()
	c := New(kv, 0, m)

	_, ok := c.Get(context.Background(), "fp", "q", 5)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))
}

func TestGet_CorruptEntryIsMiss(t *testing.T) {
	kv := newFakeKV()
	c := New(kv, 0, metrics.New())
	kv.data[c.buildKey("fp", "q", 5)] = []byte("not json")

	_, ok := c.Get(context.Background(), "fp", "q", 5)
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	kv := newFakeKV()
	kv.data["unrelated"] = []byte("keep")
	c := New(kv, 0, metrics.New())
	ctx := context.Background()
	c.Set(ctx, "fp", "a", 5, sample)
	c.Set(ctx, "fp", "b", 5, sample)

	require.NoError(t, c.Invalidate(ctx))
	assert.Len(t, kv.data, 1)
	assert.Contains(t, kv.data, "unrelated")
}
