// Package store is the state-container half of the view-model layer: a
// mutex-guarded value with a subscribe contract. View models update it with
// pure functions over the previous snapshot; the rendering layer subscribes.
package store

import "sync"

type Store[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   map[int]func(T)
	nextID int
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, subs: make(map[int]func(T))}
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	listeners := s.listeners()
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(v)
	}
}

// Update applies fn to the current value and stores the result.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	listeners := s.listeners()
	s.mu.Unlock()
	for _, l := range listeners {
		l(v)
	}
	return v
}

// Subscribe registers a listener called with each new value. The returned
// func removes the listener.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// listeners must be called with the lock held.
func (s *Store[T]) listeners() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
