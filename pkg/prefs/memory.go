package prefs

import (
	"context"
	"sync"
)

// Memory is an in-memory Backend keyed as <appID>-<key>, the same
// namespacing a browser localStorage-style store would use. Each write
// replaces the whole blob in one operation, so the backend's native
// overwrite is the atomic step and no temp-resource protocol is needed.
// It is intended for tests and ephemeral runs.
type Memory struct {
	mu     sync.RWMutex
	prefix string
	data   map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// EnsureContainer records the app ID as the key prefix.
func (m *Memory) EnsureContainer(_ context.Context, appID string) error {
	m.mu.Lock()
	m.prefix = appID + "-"
	m.mu.Unlock()
	return nil
}

func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[m.prefix+key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	// Return a copy to prevent mutation.
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *Memory) WriteAtomic(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	m.data[m.prefix+key] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

// Compile-time interface check.
var _ Backend = (*Memory)(nil)
