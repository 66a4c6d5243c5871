package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/turugol/quiniela/internal/domain/draft"
	qb "github.com/turugol/quiniela/internal/platform/querybuilder"
)

const draftUpsertSuffix = `ON CONFLICT (organizer_id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	deadline = EXCLUDED.deadline,
	league_id = EXCLUDED.league_id,
	round = EXCLUDED.round,
	matches = EXCLUDED.matches,
	leagues = EXCLUDED.leagues,
	updated_at = EXCLUDED.updated_at`

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByOrganizer(ctx context.Context, organizerID string) (draft.Draft, bool, error) {
	query, args, err := draftBaseSelectBuilder().
		Where(qb.Eq("organizer_id", organizerID)).
		ToSQL()
	if err != nil {
		return draft.Draft{}, false, fmt.Errorf("build get draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}

	item, err := draftFromRow(row)
	if err != nil {
		return draft.Draft{}, false, err
	}

	return item, true, nil
}

func (r *DraftRepository) Upsert(ctx context.Context, item draft.Draft) error {
	row, err := draftToRow(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("drafts", row, draftUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert draft query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, organizerID string) error {
	query, args, err := qb.DeleteFrom("drafts").
		Where(qb.Eq("organizer_id", organizerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	return nil
}

func draftBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"organizer_id",
		"title",
		"description",
		"deadline",
		"league_id",
		"round",
		"matches",
		"leagues",
		"updated_at",
	).From("drafts")
}
