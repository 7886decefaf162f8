package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("storage: slot not found")

// KV is a durable key-value medium holding named slots. Implementations must
// make Put atomic per key: a reader sees either the old or the new value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Closer is implemented by backends holding connections.
type Closer interface {
	Close() error
}

// MemoryKV keeps slots in process memory.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryKV creates an empty in-memory medium.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

// Get returns a copy of the slot value.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value.
func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), value...)
	return nil
}
