package draft

import "context"

// Repository exposes draft persistence operations. Absence is reported as
// (zero, false, nil), never as an error.
type Repository interface {
	GetByOrganizer(ctx context.Context, organizerID string) (Draft, bool, error)
	Upsert(ctx context.Context, item Draft) error
	Delete(ctx context.Context, organizerID string) error
}
