package domain

import (
	"context"
	"fmt"
)

// Ref is a reference to a related entity. A deferred Ref fetches its target
// on the first Resolve, which must happen while the session that produced it
// is still open. Once resolved the value stays readable after the session
// closes.
type Ref[T any] struct {
	ID     int64
	value  T
	loaded bool
	open   func() bool
	load   func(ctx context.Context) (T, error)
}

// Resolved builds a Ref that already holds its target.
func Resolved[T any](id int64, v T) Ref[T] {
	return Ref[T]{ID: id, value: v, loaded: true}
}

// Deferred builds a Ref that loads its target through load while open
// reports true.
func Deferred[T any](id int64, open func() bool, load func(ctx context.Context) (T, error)) Ref[T] {
	return Ref[T]{ID: id, open: open, load: load}
}

// Resolve returns the target, fetching it on first use.
func (r *Ref[T]) Resolve(ctx context.Context) (T, error) {
	if r.loaded {
		return r.value, nil
	}
	var zero T
	if r.load == nil || r.open == nil || !r.open() {
		return zero, fmt.Errorf("resolve %T #%d: %w", zero, r.ID, ErrLazyAccess)
	}
	v, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	r.value = v
	r.loaded = true
	return v, nil
}

// Get returns the target without fetching. It fails with ErrLazyAccess when
// the Ref was never resolved.
func (r Ref[T]) Get() (T, error) {
	if !r.loaded {
		var zero T
		return zero, fmt.Errorf("get %T #%d: %w", zero, r.ID, ErrLazyAccess)
	}
	return r.value, nil
}

func (r Ref[T]) Loaded() bool {
	return r.loaded
}
