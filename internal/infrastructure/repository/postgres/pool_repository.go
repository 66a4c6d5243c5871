package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/turugol/quiniela/internal/domain/pool"
	qb "github.com/turugol/quiniela/internal/platform/querybuilder"
)

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) GetByID(ctx context.Context, id string) (pool.Pool, bool, error) {
	query, args, err := poolBaseSelectBuilder().
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return pool.Pool{}, false, fmt.Errorf("build get pool query: %w", err)
	}

	var row poolTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pool.Pool{}, false, nil
		}
		return pool.Pool{}, false, fmt.Errorf("get pool: %w", err)
	}

	item, err := poolFromRow(row)
	if err != nil {
		return pool.Pool{}, false, err
	}

	return item, true, nil
}

func (r *PoolRepository) List(ctx context.Context) ([]pool.Pool, error) {
	query, args, err := poolBaseSelectBuilder().
		OrderBy("created_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pools query: %w", err)
	}

	var rows []poolTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}

	out := make([]pool.Pool, 0, len(rows))
	for _, row := range rows {
		item, err := poolFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) error {
	row, err := poolToRow(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("pools", row, "")
	if err != nil {
		return fmt.Errorf("build create pool query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pool %s already exists", item.ID)
		}
		return fmt.Errorf("create pool: %w", err)
	}

	return nil
}

func poolBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"title",
		"description",
		"deadline",
		"organizer_id",
		"status",
		"fixtures",
		"created_at",
	).From("pools")
}
