package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store, the default for tests and throwaway runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
	subs *subscribers
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]string),
		subs: newSubscribers(),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	m.subs.notify(Event{Key: key, Value: value})
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	m.subs.notify(Event{Key: key, Removed: true})
	return nil
}

func (m *Memory) Subscribe(key string, fn func(Event)) func() {
	return m.subs.add(key, fn)
}

func (m *Memory) Close() error {
	return nil
}
