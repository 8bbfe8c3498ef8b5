package cache

import (
	"context"
	"testing"
	"time"

	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T, maxSize int) (*CacheManager, *fakeClock) {
	t.Helper()
	m := NewManager(config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: time.Minute})
	require.NotNil(t, m)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m.now = clock.now
	t.Cleanup(func() { m.Close() })
	return m, clock
}

func TestCacheHitAndMiss(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 10)

	_, err := m.Get(ctx, "info", "42")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "info", "42", `{"id":42}`))
	v, err := m.Get(ctx, "info", "42")
	require.NoError(t, err)
	assert.Equal(t, `{"id":42}`, v)

	_, err = m.Get(ctx, "other", "42")
	assert.ErrorIs(t, err, common.ErrCacheMiss, "namespaces are separate")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(t, 10)

	require.NoError(t, m.Set(ctx, "info", "1", "v"))
	clock.advance(2 * time.Minute)

	_, err := m.Get(ctx, "info", "1")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, int64(1), m.GetStats().Evictions)
	assert.Zero(t, m.GetStats().Size)
}

func TestCacheEvictsLeastUsedWhenFull(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(t, 2)

	require.NoError(t, m.Set(ctx, "info", "a", "A"))
	clock.advance(time.Second)
	require.NoError(t, m.Set(ctx, "info", "b", "B"))
	_, err := m.Get(ctx, "info", "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "info", "c", "C"))

	_, err = m.Get(ctx, "info", "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	v, err := m.Get(ctx, "info", "a")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 1)

	require.NoError(t, m.Set(ctx, "info", "a", "A"))
	require.NoError(t, m.Set(ctx, "info", "a", "A2"))

	v, err := m.Get(ctx, "info", "a")
	require.NoError(t, err)
	assert.Equal(t, "A2", v)
	assert.Zero(t, m.GetStats().Evictions)
}

func TestDisabledCacheIsNil(t *testing.T) {
	ctx := context.Background()
	m := NewManager(config.CacheConfig{Enabled: false})
	assert.Nil(t, m)

	assert.NoError(t, m.Set(ctx, "info", "a", "A"))
	_, err := m.Get(ctx, "info", "a")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, Stats{}, m.GetStats())
	assert.NoError(t, m.Close())
}
