package state

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository used by tests and anywhere a
// throwaway store is acceptable.
type MemoryRepository struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(key, value)
	return nil
}

func (r *MemoryRepository) SetAll(_ context.Context, values map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, value := range values {
		r.store(key, value)
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string][]byte, len(r.values))
	for key, value := range r.values {
		out := make([]byte, len(value))
		copy(out, value)
		result[key] = out
	}
	return result, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string][]byte)
	return nil
}

func (r *MemoryRepository) store(key string, value []byte) {
	out := make([]byte, len(value))
	copy(out, value)
	r.values[key] = out
}
