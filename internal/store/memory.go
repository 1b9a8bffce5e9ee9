package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV used in tests and as the default store when no
// database is configured. Values are copied on the way in and out so callers
// can never observe shared slice storage mid-mutation.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, bucket, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.buckets[bucket]
	if !ok {
		return nil, false, nil
	}
	v, ok := b[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[bucket] = b
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	b[key] = stored
	return nil
}

func (m *Memory) ForEach(_ context.Context, bucket string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	snapshot := make(map[string][]byte, len(m.buckets[bucket]))
	for k, v := range m.buckets[bucket] {
		c := make([]byte, len(v))
		copy(c, v)
		snapshot[k] = c
	}
	m.mu.RUnlock()

	for k, v := range snapshot {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
