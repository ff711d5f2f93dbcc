package storage

import (
	"context"
	"sync"
)

// MemoryGateway is an in-process Gateway for tests. Same contract as the
// sqlite implementation, nothing touches disk.
type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSet, when set, is returned by every Set call. Lets tests exercise
	// the persistence-failure path.
	FailSet error
}

func NewMemory() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

func (g *MemoryGateway) Get(_ context.Context, key string) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (g *MemoryGateway) Set(_ context.Context, key string, value []byte) error {
	if g.FailSet != nil {
		return g.FailSet
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	g.data[key] = cp
	return nil
}

func (g *MemoryGateway) Remove(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, key)
	return nil
}

func (g *MemoryGateway) Close() error { return nil }
