// Package providers holds the hosted AI collaborators and the lazy
// initialization they share.
package providers

import (
	"context"
	"sync"
	"sync/atomic"
)

// Lazy constructs a value on first use. The constructor runs at most once;
// a failed construction is remembered and returned to every later caller.
type Lazy[T any] struct {
	once  sync.Once
	init  func(ctx context.Context) (T, error)
	ready atomic.Bool

	val T
	err error
}

func NewLazy[T any](init func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{init: init}
}

// Get returns the value, constructing it if needed. The constructor gets a
// context detached from ctx's cancellation so a client never inherits a
// request deadline.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		l.val, l.err = l.init(context.WithoutCancel(ctx))
		if l.err == nil {
			l.ready.Store(true)
		}
	})
	return l.val, l.err
}

// Peek returns the value only if it was already constructed successfully.
func (l *Lazy[T]) Peek() (T, bool) {
	if !l.ready.Load() {
		var zero T
		return zero, false
	}
	return l.val, true
}
