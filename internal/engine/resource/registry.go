// Package resource provides a reference-counted handle registry for shared
// render resources. Entities and models hold Handles; the registry owns the
// underlying values and frees them when the last reference is released.
package resource

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Handle is an opaque reference to a registered value. The zero Handle is
// never issued.
type Handle uint32

// Valid reports whether h could refer to a value.
func (h Handle) Valid() bool { return h != 0 }

// ErrUnknownHandle is returned for handles that were never issued or are
// already released.
var ErrUnknownHandle = errors.New("unknown handle")

type entry[T any] struct {
	value T
	key   string
	refs  int
}

// Registry stores values of type T behind reference-counted handles.
// It is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[Handle]*entry[T]
	keys    map[string]Handle
	next    Handle
	release func(T) error

	// Stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewRegistry creates a registry. release is called once for each value when
// its reference count drops to zero, and may be nil.
func NewRegistry[T any](release func(T) error) *Registry[T] {
	return &Registry[T]{
		entries: make(map[Handle]*entry[T]),
		keys:    make(map[string]Handle),
		release: release,
	}
}

// Add registers v with a reference count of one.
func (r *Registry[T]) Add(v T) Handle {
	return r.AddNamed("", v)
}

// AddNamed registers v under key so later Lookup calls can share it.
// An empty key registers an anonymous value.
func (r *Registry[T]) AddNamed(key string, v T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.entries[h] = &entry[T]{value: v, key: key, refs: 1}
	if key != "" {
		r.keys[key] = h
	}
	return h
}

// Lookup returns the handle registered under key and takes a reference on it.
func (r *Registry[T]) Lookup(key string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.keys[key]
	if !ok {
		r.misses.Add(1)
		return 0, false
	}
	r.hits.Add(1)
	r.entries[h].refs++
	return h, true
}

// Get returns the value behind h.
func (r *Registry[T]) Get(h Handle) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[h]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Retain takes an additional reference on h.
func (r *Registry[T]) Retain(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[h]
	if !ok {
		return fmt.Errorf("retain %d: %w", h, ErrUnknownHandle)
	}
	e.refs++
	return nil
}

// Release drops one reference on h and frees the value when none remain.
func (r *Registry[T]) Release(h Handle) error {
	r.mu.Lock()
	e, ok := r.entries[h]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("release %d: %w", h, ErrUnknownHandle)
	}
	e.refs--
	if e.refs > 0 {
		r.mu.Unlock()
		return nil
	}
	r.forget(h, e)
	r.mu.Unlock()

	return r.free(e.value)
}

// Refs returns the current reference count of h, or 0 if it is unknown.
func (r *Registry[T]) Refs(h Handle) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[h]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of live values.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close frees every value regardless of its reference count, in handle
// order. All release failures are returned together.
func (r *Registry[T]) Close() error {
	r.mu.Lock()
	handles := make([]Handle, 0, len(r.entries))
	for h := range r.entries {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	values := make([]T, 0, len(handles))
	for _, h := range handles {
		values = append(values, r.entries[h].value)
	}
	r.entries = make(map[Handle]*entry[T])
	r.keys = make(map[string]Handle)
	r.mu.Unlock()

	var err error
	for _, v := range values {
		err = multierr.Append(err, r.free(v))
	}
	return err
}

// Stats returns keyed lookup statistics.
func (r *Registry[T]) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}

func (r *Registry[T]) forget(h Handle, e *entry[T]) {
	delete(r.entries, h)
	if e.key != "" && r.keys[e.key] == h {
		delete(r.keys, e.key)
	}
}

func (r *Registry[T]) free(v T) error {
	if r.release == nil {
		return nil
	}
	return r.release(v)
}
