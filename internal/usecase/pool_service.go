package usecase

import (
	"context"
	"fmt"

	"github.com/turugol/quiniela/internal/domain/pool"
)

type PoolService struct {
	poolRepo pool.Repository
}

func NewPoolService(poolRepo pool.Repository) *PoolService {
	return &PoolService{poolRepo: poolRepo}
}

func (s *PoolService) Get(ctx context.Context, poolID string) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.Get")
	defer span.End()

	item, exists, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, fmt.Errorf("get pool %s: %w", poolID, err)
	}
	if !exists {
		return pool.Pool{}, fmt.Errorf("%w: pool %s", ErrNotFound, poolID)
	}

	return item, nil
}

func (s *PoolService) List(ctx context.Context) ([]pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.List")
	defer span.End()

	items, err := s.poolRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}

	return items, nil
}
