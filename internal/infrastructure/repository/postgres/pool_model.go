package postgres

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/turugol/quiniela/internal/domain/pool"
)

type poolTableModel struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Deadline    time.Time `db:"deadline"`
	OrganizerID string    `db:"organizer_id"`
	Status      string    `db:"status"`
	Fixtures    []byte    `db:"fixtures"`
	CreatedAt   time.Time `db:"created_at"`
}

type matchDoc struct {
	ID          string    `json:"id"`
	LeagueID    int64     `json:"league_id"`
	LeagueName  string    `json:"league_name"`
	Round       string    `json:"round"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeLogoURL string    `json:"home_logo_url"`
	AwayLogoURL string    `json:"away_logo_url"`
	KickoffAt   time.Time `json:"kickoff_at"`
	Result      *string   `json:"result,omitempty"`
}

func matchDocsFrom(matches []pool.Match) []matchDoc {
	out := make([]matchDoc, 0, len(matches))
	for _, m := range matches {
		doc := matchDoc{
			ID:          m.ID,
			LeagueID:    m.LeagueID,
			LeagueName:  m.LeagueName,
			Round:       m.Round,
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			HomeLogoURL: m.HomeLogoURL,
			AwayLogoURL: m.AwayLogoURL,
			KickoffAt:   m.KickoffAt,
		}
		if m.Result != nil {
			result := string(*m.Result)
			doc.Result = &result
		}
		out = append(out, doc)
	}
	return out
}

func matchesFromDocs(docs []matchDoc) []pool.Match {
	out := make([]pool.Match, 0, len(docs))
	for _, doc := range docs {
		m := pool.Match{
			ID:          doc.ID,
			LeagueID:    doc.LeagueID,
			LeagueName:  doc.LeagueName,
			Round:       doc.Round,
			HomeTeam:    doc.HomeTeam,
			AwayTeam:    doc.AwayTeam,
			HomeLogoURL: doc.HomeLogoURL,
			AwayLogoURL: doc.AwayLogoURL,
			KickoffAt:   doc.KickoffAt,
		}
		if doc.Result != nil {
			if outcome, ok := pool.ParseOutcome(*doc.Result); ok {
				m.Result = &outcome
			}
		}
		out = append(out, m)
	}
	return out
}

func poolToRow(item pool.Pool) (poolTableModel, error) {
	fixturesJSON, err := jsoniter.Marshal(matchDocsFrom(item.Fixtures))
	if err != nil {
		return poolTableModel{}, fmt.Errorf("marshal pool fixtures: %w", err)
	}

	return poolTableModel{
		ID:          item.ID,
		Title:       item.Metadata.Title,
		Description: item.Metadata.Description,
		Deadline:    item.Metadata.Deadline,
		OrganizerID: item.Metadata.OrganizerID,
		Status:      item.Metadata.Status,
		Fixtures:    fixturesJSON,
		CreatedAt:   item.Metadata.CreatedAt,
	}, nil
}

func poolFromRow(row poolTableModel) (pool.Pool, error) {
	var docs []matchDoc
	if len(row.Fixtures) > 0 {
		if err := jsoniter.Unmarshal(row.Fixtures, &docs); err != nil {
			return pool.Pool{}, fmt.Errorf("unmarshal pool fixtures: %w", err)
		}
	}

	return pool.Pool{
		ID: row.ID,
		Metadata: pool.Metadata{
			Title:       row.Title,
			Description: row.Description,
			Deadline:    row.Deadline,
			OrganizerID: row.OrganizerID,
			CreatedAt:   row.CreatedAt,
			Status:      row.Status,
		},
		Fixtures: matchesFromDocs(docs),
	}, nil
}
