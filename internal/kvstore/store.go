package kvstore

import (
	"context"
	"sync"
)

// Event describes one mutation of a watched key.
type Event struct {
	Key     string
	Value   string
	Removed bool
}

// Store is the persistent key-value capability the engine runs on.
// Every logical key has exactly one writing feature; other features may
// read a key or subscribe to it as a notification channel. Notifications
// are best effort and delivered asynchronously; concurrent writers to the
// same key resolve last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	// Subscribe registers fn for mutations of key. The returned cancel
	// func unregisters it; fn must not be called after cancel returns.
	Subscribe(key string, fn func(Event)) (cancel func())

	Close() error
}

// subscribers fans mutation events out to per-key listeners. Shared by the
// in-process backends (memory, file); the redis backend rides pub/sub.
type subscribers struct {
	mu    sync.Mutex
	next  int
	byKey map[string]map[int]func(Event)
}

func newSubscribers() *subscribers {
	return &subscribers{byKey: make(map[string]map[int]func(Event))}
}

func (s *subscribers) add(key string, fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	if s.byKey[key] == nil {
		s.byKey[key] = make(map[int]func(Event))
	}
	s.byKey[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.byKey[key], id)
	}
}

func (s *subscribers) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.byKey[ev.Key]))
	for _, fn := range s.byKey[ev.Key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Deliver off the mutating goroutine so a listener can call back
	// into the store without deadlocking.
	for _, fn := range fns {
		go fn(ev)
	}
}
