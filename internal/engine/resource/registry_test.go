package resource

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type releaseLog struct {
	mu    sync.Mutex
	freed []uint32
	fail  map[uint32]error
}

func (l *releaseLog) release(v uint32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.freed = append(l.freed, v)
	return l.fail[v]
}

func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry[uint32](nil)

	a := r.Add(10)
	b := r.Add(20)
	require.True(t, a.Valid())
	require.NotEqual(t, a, b)

	v, ok := r.Get(a)
	require.True(t, ok)
	assert.Equal(t, uint32(10), v)

	_, ok = r.Get(Handle(0))
	assert.False(t, ok)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryRefCounting(t *testing.T) {
	log := &releaseLog{}
	r := NewRegistry(log.release)

	h := r.Add(7)
	require.NoError(t, r.Retain(h))
	assert.Equal(t, 2, r.Refs(h))

	require.NoError(t, r.Release(h))
	assert.Empty(t, log.freed, "value must survive while a reference remains")

	require.NoError(t, r.Release(h))
	assert.Equal(t, []uint32{7}, log.freed)
	assert.Equal(t, 0, r.Len())

	t.Run("released handle is unknown", func(t *testing.T) {
		assert.ErrorIs(t, r.Release(h), ErrUnknownHandle)
		assert.ErrorIs(t, r.Retain(h), ErrUnknownHandle)
	})
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry[uint32](nil)

	_, ok := r.Lookup("grass.png")
	assert.False(t, ok)

	h := r.AddNamed("grass.png", 3)
	shared, ok := r.Lookup("grass.png")
	require.True(t, ok)
	assert.Equal(t, h, shared)
	assert.Equal(t, 2, r.Refs(h))

	hits, misses := r.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	require.NoError(t, r.Release(h))
	require.NoError(t, r.Release(h))
	_, ok = r.Lookup("grass.png")
	assert.False(t, ok, "key must be forgotten with its value")
}

func TestRegistryClose(t *testing.T) {
	errA := errors.New("vao 1 busy")
	errB := errors.New("texture 3 lost")
	log := &releaseLog{fail: map[uint32]error{1: errA, 3: errB}}
	r := NewRegistry(log.release)

	for _, v := range []uint32{1, 2, 3} {
		r.Add(v)
	}
	h := r.Add(4)
	require.NoError(t, r.Retain(h))

	err := r.Close()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	assert.Equal(t, []uint32{1, 2, 3, 4}, log.freed)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryConcurrentAdd(t *testing.T) {
	r := NewRegistry[int](nil)

	var wg sync.WaitGroup
	handles := make([]Handle, 64)
	for i := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handles[i] = r.Add(i)
		}()
	}
	wg.Wait()

	seen := make(map[Handle]bool)
	for i, h := range handles {
		require.False(t, seen[h], "handle %d issued twice", h)
		seen[h] = true
		v, ok := r.Get(h)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}
