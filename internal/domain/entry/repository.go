package entry

import (
	"context"
	"errors"
)

// ErrAlreadyExists is returned by Create when the user already holds an
// entry in the pool. The storage layer enforces this uniqueness.
var ErrAlreadyExists = errors.New("entry already exists")

// Repository exposes entry persistence operations.
type Repository interface {
	GetByUserAndPool(ctx context.Context, userID, poolID string) (Entry, bool, error)
	// ListByPoolScoreDesc returns every entry of a pool ordered by score
	// descending; equal scores keep submission order.
	ListByPoolScoreDesc(ctx context.Context, poolID string) ([]Entry, error)
	Create(ctx context.Context, item Entry) error
}
