package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryAdapter is an in-process Adapter used for tests and local runs.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMemoryAdapter constructs an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		data: make(map[string]json.RawMessage),
	}
}

func (m *MemoryAdapter) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make(json.RawMessage, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *MemoryAdapter) Set(_ context.Context, key string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return wrapErr("set", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = bytes
	return nil
}

func (m *MemoryAdapter) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
