package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/turugol/quiniela/internal/domain/entry"
)

type storedEntry struct {
	item entry.Entry
	seq  uint64
}

type EntryRepository struct {
	mu    sync.RWMutex
	items map[string]storedEntry
	seq   uint64
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{items: make(map[string]storedEntry)}
}

func (r *EntryRepository) GetByUserAndPool(_ context.Context, userID, poolID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[entryKey(userID, poolID)]
	if !ok {
		return entry.Entry{}, false, nil
	}

	return cloneEntry(stored.item), true, nil
}

// ListByPoolScoreDesc returns the pool's entries ordered by score
// descending. Entries with equal scores keep submission order.
func (r *EntryRepository) ListByPoolScoreDesc(_ context.Context, poolID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := make([]storedEntry, 0, len(r.items))
	for _, s := range r.items {
		if s.item.PoolID == poolID {
			stored = append(stored, s)
		}
	}
	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].item.Score != stored[j].item.Score {
			return stored[i].item.Score > stored[j].item.Score
		}
		return stored[i].seq < stored[j].seq
	})

	out := make([]entry.Entry, len(stored))
	for i, s := range stored {
		out[i] = cloneEntry(s.item)
	}

	return out, nil
}

func (r *EntryRepository) Create(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(item.UserID, item.PoolID)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: user=%s pool=%s", entry.ErrAlreadyExists, item.UserID, item.PoolID)
	}

	r.seq++
	r.items[key] = storedEntry{item: cloneEntry(item), seq: r.seq}
	return nil
}

func entryKey(userID, poolID string) string {
	return userID + "::" + poolID
}

func cloneEntry(item entry.Entry) entry.Entry {
	copied := item
	copied.Selections = item.Selections.Clone()
	return copied
}
