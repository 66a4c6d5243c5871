package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/turugol/quiniela/internal/domain/pool"
)

type PoolRepository struct {
	mu    sync.RWMutex
	items map[string]pool.Pool
}

func NewPoolRepository(seed ...pool.Pool) *PoolRepository {
	items := make(map[string]pool.Pool, len(seed))
	for _, item := range seed {
		items[item.ID] = clonePool(item)
	}
	return &PoolRepository{items: items}
}

func (r *PoolRepository) GetByID(_ context.Context, id string) (pool.Pool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return pool.Pool{}, false, nil
	}

	return clonePool(item), true, nil
}

func (r *PoolRepository) List(_ context.Context) ([]pool.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pool.Pool, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, clonePool(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Metadata.CreatedAt.Equal(out[j].Metadata.CreatedAt) {
			return out[i].Metadata.CreatedAt.After(out[j].Metadata.CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *PoolRepository) Create(_ context.Context, item pool.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("pool %s already exists", item.ID)
	}

	r.items[item.ID] = clonePool(item)
	return nil
}

func clonePool(item pool.Pool) pool.Pool {
	copied := item
	copied.Fixtures = make([]pool.Match, len(item.Fixtures))
	for i, m := range item.Fixtures {
		copied.Fixtures[i] = m
		if m.Result != nil {
			result := *m.Result
			copied.Fixtures[i].Result = &result
		}
	}
	return copied
}
