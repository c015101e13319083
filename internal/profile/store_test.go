package profile

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mu       sync.Mutex
	calls    int
	delay    time.Duration
	failNext bool
	profiles map[string]*Profile
}

func (c *countingSource) Load(id string) (*Profile, error) {
	c.mu.Lock()
	c.calls++
	fail := c.failNext
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if fail {
		return nil, fmt.Errorf("transient failure loading %q", id)
	}
	p, ok := c.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
	}
	return p, nil
}

func (c *countingSource) loadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newCountingSource(ids ...string) *countingSource {
	src := &countingSource{profiles: make(map[string]*Profile)}
	for _, id := range ids {
		src.profiles[id] = &Profile{
			Templates: []string{"t"},
			Pools:     []Pool{{Name: "a", Values: []string{"x"}}},
		}
	}
	return src
}

func TestStore_CachesAfterFirstLoad(t *testing.T) {
	t.Parallel()

	src := newCountingSource("scene_default")
	store := NewStore(src)

	first, err := store.Get("scene_default")
	require.NoError(t, err)
	second, err := store.Get("scene_default")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.loadCount())
}

func TestStore_ConcurrentGetsLoadOnce(t *testing.T) {
	t.Parallel()

	src := newCountingSource("scene_default")
	src.delay = 5 * time.Millisecond
	store := NewStore(src)

	const goroutines = 50
	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			_, errs[n] = store.Get("scene_default")
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "goroutine %d", i)
	}
	assert.Equal(t, 1, src.loadCount())
}

func TestStore_FailedLoadIsRetried(t *testing.T) {
	t.Parallel()

	src := newCountingSource("scene_default")
	src.failNext = true
	store := NewStore(src)

	_, err := store.Get("scene_default")
	require.Error(t, err)

	src.mu.Lock()
	src.failNext = false
	src.mu.Unlock()

	p, err := store.Get("scene_default")
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, 2, src.loadCount())
}

func TestStore_MissingProfileNotCached(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	store := NewStore(src)

	_, err := store.Get("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, src.loadCount())
}

func TestStore_Invalidate(t *testing.T) {
	t.Parallel()

	src := newCountingSource("scene_default", "style_default")
	store := NewStore(src)

	_, err := store.Get("scene_default")
	require.NoError(t, err)
	_, err = store.Get("style_default")
	require.NoError(t, err)

	store.Invalidate("scene_default")

	_, err = store.Get("scene_default")
	require.NoError(t, err)
	_, err = store.Get("style_default")
	require.NoError(t, err)

	// scene reloaded, style still cached
	assert.Equal(t, 3, src.loadCount())
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()

	src := newCountingSource("scene_default")
	store := NewStore(src)

	_, err := store.Get("scene_default")
	require.NoError(t, err)
	store.Reset()
	_, err = store.Get("scene_default")
	require.NoError(t, err)

	assert.Equal(t, 2, src.loadCount())
}

func TestStore_UsesLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "scene_wilds", wildsProfile)

	store := NewStore(NewLoader(dir))
	p, err := store.Get("scene_wilds")
	require.NoError(t, err)
	assert.Equal(t, "Wilds", p.Name)
}
