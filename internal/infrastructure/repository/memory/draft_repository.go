package memory

import (
	"context"
	"sync"

	"github.com/turugol/quiniela/internal/domain/draft"
)

type DraftRepository struct {
	mu    sync.RWMutex
	items map[string]draft.Draft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{items: make(map[string]draft.Draft)}
}

func (r *DraftRepository) GetByOrganizer(_ context.Context, organizerID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[organizerID]
	if !ok {
		return draft.Draft{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *DraftRepository) Upsert(_ context.Context, item draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.OrganizerID] = item.Clone()
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, organizerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, organizerID)
	return nil
}
