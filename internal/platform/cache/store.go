package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/turugol/quiniela/internal/platform/resilience"
)

type item struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache. A zero ttl disables expiry.
// Concurrent loads for the same key are collapsed into one.
type Store struct {
	mu     sync.RWMutex
	items  map[string]item
	ttl    time.Duration
	flight resilience.SingleFlight
	now    func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !it.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false
	}

	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = item{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader, caching its
// result. The loader runs at most once per key across goroutines.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
