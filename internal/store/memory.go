package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV used by tests and as a last-resort fallback.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns the value stored under key, or (nil, nil) when absent.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set overwrites the value stored under key.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes the key.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Ping always succeeds.
func (m *MemoryKV) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }
