package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/turugol/quiniela/internal/domain/entry"
	qb "github.com/turugol/quiniela/internal/platform/querybuilder"
)

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) GetByUserAndPool(ctx context.Context, userID, poolID string) (entry.Entry, bool, error) {
	query, args, err := entryBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("pool_id", poolID),
		).
		ToSQL()
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("build get entry query: %w", err)
	}

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry: %w", err)
	}

	item, err := entryFromRow(row)
	if err != nil {
		return entry.Entry{}, false, err
	}

	return item, true, nil
}

func (r *EntryRepository) ListByPoolScoreDesc(ctx context.Context, poolID string) ([]entry.Entry, error) {
	query, args, err := entryBaseSelectBuilder().
		Where(qb.Eq("pool_id", poolID)).
		OrderBy("score DESC", "created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entries by pool: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		item, err := entryFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *EntryRepository) Create(ctx context.Context, item entry.Entry) error {
	row, err := entryToRow(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("entries", row, "")
	if err != nil {
		return fmt.Errorf("build create entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s pool=%s", entry.ErrAlreadyExists, item.UserID, item.PoolID)
		}
		return fmt.Errorf("create entry: %w", err)
	}

	return nil
}

func entryBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"pool_id",
		"user_id",
		"user_name",
		"selections",
		"stake",
		"combinations",
		"status",
		"score",
		"created_at",
	).From("entries")
}
