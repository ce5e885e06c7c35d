package tablesources

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sync"
)

// inMemoryRepository implements Repository with a map
type inMemoryRepository struct {
	mu     sync.RWMutex
	tables map[int][]byte
}

// NewInMemory creates a new in-memory table repository
func NewInMemory() Repository {
	return &inMemoryRepository{
		tables: make(map[int][]byte),
	}
}

// Open implements tables.Source
func (r *inMemoryRepository) Open(ctx context.Context, id int) (io.ReadCloser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.tables[id]
	if !exists {
		return nil, notFound(id, "memory")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put implements Repository.Put
func (r *inMemoryRepository) Put(ctx context.Context, id int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy so later changes by the caller are not seen
	r.tables[id] = bytes.Clone(data)
	return nil
}

// List implements Repository.List
func (r *inMemoryRepository) List(ctx context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}
