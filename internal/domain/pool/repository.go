package pool

import "context"

// Repository exposes published pool persistence operations.
type Repository interface {
	GetByID(ctx context.Context, poolID string) (Pool, bool, error)
	List(ctx context.Context) ([]Pool, error)
	Create(ctx context.Context, item Pool) error
}
