// Package observable provides the reactive state primitive shared by the
// session and pool registry stores: a value that can be read, atomically
// replaced, and subscribed to, plus pure derived views over it.
package observable

import (
	"sync"
	"sync/atomic"
)

// Readable is anything that exposes a current value and change notifications.
type Readable[T any] interface {
	Get() T
	// Subscribe calls fn with the current value immediately and again after
	// every change. The returned func removes the subscription.
	Subscribe(fn func(T)) (unsubscribe func())
}

// Store is a writable Readable. Set and Update replace the whole value under a
// lock; subscribers are notified outside the lock with the value that was
// committed.
type Store[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[uint64]func(T)
	next  uint64
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, subs: map[uint64]func(T){}}
}

func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *Store[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update applies fn to the current value and commits the result atomically.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	committed := s.value
	subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(committed)
	}
}

// UpdateIf is Update for transitions that may decide not to happen. When fn
// reports false nothing is committed and no subscriber is called.
func (s *Store[T]) UpdateIf(fn func(T) (T, bool)) bool {
	s.mu.Lock()
	next, ok := fn(s.value)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.value = next
	subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return true
}

func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store[T]) snapshotLocked() []func(T) {
	subs := make([]func(T), 0, len(s.subs))
	for i := uint64(0); i < s.next; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

type derived[S, T any] struct {
	src Readable[S]
	fn  func(S) T
}

// Derive returns a view of src projected through fn. It holds no state of its
// own: Get recomputes from src, and subscribers see fn applied to every
// upstream change.
func Derive[S, T any](src Readable[S], fn func(S) T) Readable[T] {
	return derived[S, T]{src: src, fn: fn}
}

func (d derived[S, T]) Get() T {
	return d.fn(d.src.Get())
}

func (d derived[S, T]) Subscribe(fn func(T)) func() {
	return d.src.Subscribe(func(v S) {
		fn(d.fn(v))
	})
}

type derived2[A, B, T any] struct {
	a  Readable[A]
	b  Readable[B]
	fn func(A, B) T
}

// Derive2 combines two sources. Subscribers receive a single initial value and
// then one value per upstream change on either side.
func Derive2[A, B, T any](a Readable[A], b Readable[B], fn func(A, B) T) Readable[T] {
	return derived2[A, B, T]{a: a, b: b, fn: fn}
}

func (d derived2[A, B, T]) Get() T {
	return d.fn(d.a.Get(), d.b.Get())
}

func (d derived2[A, B, T]) Subscribe(fn func(T)) func() {
	var ready atomic.Bool
	emit := func() {
		if ready.Load() {
			fn(d.Get())
		}
	}
	unsubA := d.a.Subscribe(func(A) { emit() })
	unsubB := d.b.Subscribe(func(B) { emit() })
	ready.Store(true)
	emit()
	return func() {
		unsubA()
		unsubB()
	}
}
