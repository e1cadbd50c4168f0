package memo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(ttl time.Duration) (*Cache[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	c := New[int](ttl)
	c.now = clock.now
	return c, clock
}

func TestKey_Deterministic(t *testing.T) {
	type input struct {
		Dates []string
		Today string
	}
	a, err := Key(input{Dates: []string{"2025-03-01", "2025-03-02"}, Today: "2025-03-02"})
	require.NoError(t, err)
	b, err := Key(input{Dates: []string{"2025-03-01", "2025-03-02"}, Today: "2025-03-02"})
	require.NoError(t, err)
	c, err := Key(input{Dates: []string{"2025-03-01"}, Today: "2025-03-02"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 5, int(a.Version()))
}

func TestKey_UnencodableInput(t *testing.T) {
	_, err := Key(make(chan int))
	assert.Error(t, err)
}

func TestCache_GetOrCompute(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	key, err := Key("march")
	require.NoError(t, err)

	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	v, hit := c.GetOrCompute(key, compute)
	assert.Equal(t, 42, v)
	assert.False(t, hit)

	v, hit = c.GetOrCompute(key, compute)
	assert.Equal(t, 42, v)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
}

func TestCache_Expiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	key, _ := Key("expiring")
	c.Set(key, 7)

	clock.t = clock.t.Add(59 * time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Prune(context.Background()))
	assert.Equal(t, 0, c.Len())
}

func TestCache_ZeroTTLDisablesStorage(t *testing.T) {
	c, _ := newTestCache(0)
	key, _ := Key("nothing")
	c.Set(key, 1)

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_PruneCancelledContext(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Prune(ctx), context.Canceled)
}

func TestCache_MaxEntries(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.WithMaxEntries(2)

	first, _ := Key("first")
	second, _ := Key("second")
	third, _ := Key("third")

	c.Set(first, 1)
	clock.t = clock.t.Add(time.Second)
	c.Set(second, 2)
	clock.t = clock.t.Add(time.Second)
	c.Set(third, 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(first)
	assert.False(t, ok, "entry closest to expiry is evicted")
	v, ok := c.Get(third)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	// Overwriting an existing key never evicts.
	c.Set(second, 20)
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(third)
	assert.True(t, ok)
}

func TestCache_MaxEntriesDropsExpiredFirst(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.WithMaxEntries(2)

	stale, _ := Key("stale")
	fresh, _ := Key("fresh")
	next, _ := Key("next")

	c.Set(stale, 1)
	clock.t = clock.t.Add(50 * time.Second)
	c.Set(fresh, 2)
	clock.t = clock.t.Add(15 * time.Second)
	c.Set(next, 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(fresh)
	assert.True(t, ok)
	_, ok = c.Get(next)
	assert.True(t, ok)
}
