package postgres

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/picks"
	"github.com/turugol/quiniela/internal/domain/pool"
)

type entryTableModel struct {
	ID           string    `db:"id"`
	PoolID       string    `db:"pool_id"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	Selections   []byte    `db:"selections"`
	Stake        int64     `db:"stake"`
	Combinations int       `db:"combinations"`
	Status       string    `db:"status"`
	Score        int       `db:"score"`
	CreatedAt    time.Time `db:"created_at"`
}

func entryToRow(item entry.Entry) (entryTableModel, error) {
	doc := make(map[string][]string, len(item.Selections))
	for matchID, outcomes := range item.Selections {
		values := make([]string, 0, len(outcomes))
		for _, outcome := range outcomes {
			values = append(values, string(outcome))
		}
		doc[matchID] = values
	}

	selectionsJSON, err := jsoniter.Marshal(doc)
	if err != nil {
		return entryTableModel{}, fmt.Errorf("marshal entry selections: %w", err)
	}

	return entryTableModel{
		ID:           item.ID,
		PoolID:       item.PoolID,
		UserID:       item.UserID,
		UserName:     item.UserName,
		Selections:   selectionsJSON,
		Stake:        item.Stake,
		Combinations: item.Combinations,
		Status:       item.Status,
		Score:        item.Score,
		CreatedAt:    item.CreatedAt,
	}, nil
}

func entryFromRow(row entryTableModel) (entry.Entry, error) {
	var doc map[string][]string
	if len(row.Selections) > 0 {
		if err := jsoniter.Unmarshal(row.Selections, &doc); err != nil {
			return entry.Entry{}, fmt.Errorf("unmarshal entry selections: %w", err)
		}
	}

	selections := make(picks.Selections, len(doc))
	for matchID, values := range doc {
		outcomes := make([]pool.Outcome, 0, len(values))
		for _, value := range values {
			if outcome, ok := pool.ParseOutcome(value); ok {
				outcomes = append(outcomes, outcome)
			}
		}
		selections[matchID] = outcomes
	}

	return entry.Entry{
		ID:           row.ID,
		PoolID:       row.PoolID,
		UserID:       row.UserID,
		UserName:     row.UserName,
		Selections:   selections,
		Stake:        row.Stake,
		Combinations: row.Combinations,
		Status:       row.Status,
		Score:        row.Score,
		CreatedAt:    row.CreatedAt,
	}, nil
}
