package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/turugol/quiniela/internal/infrastructure/repository/memory"
)

func TestPoolServiceGet_ReturnsSeededPool(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(memory.NewPoolRepository(memory.SeedPools()...))

	item, err := svc.Get(context.Background(), memory.SeedPoolID)
	if err != nil {
		t.Fatalf("get pool failed: %v", err)
	}
	if item.ID != memory.SeedPoolID {
		t.Fatalf("unexpected pool id: %s", item.ID)
	}
}

func TestPoolServiceGet_UnknownPool(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(memory.NewPoolRepository())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPoolServiceList_ReturnsAll(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(memory.NewPoolRepository(memory.SeedPools()...))

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list pools failed: %v", err)
	}
	if len(items) != len(memory.SeedPools()) {
		t.Fatalf("unexpected pool count: %d", len(items))
	}
}
