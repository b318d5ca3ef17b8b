package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV used by tests and throwaway sessions.
type MemoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool

	// FailWrites makes Apply return ErrWriteFailed, for exercising save failures.
	FailWrites bool
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Apply writes the batch atomically with respect to other MemoryKV calls.
func (m *MemoryKV) Apply(_ context.Context, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites {
		return ErrWriteFailed
	}
	for k, v := range b.Set {
		m.data[k] = v
	}
	for _, k := range b.Delete {
		delete(m.data, k)
	}
	return nil
}

// Set stores a raw value, bypassing the gateway.
func (m *MemoryKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Close marks the store closed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
