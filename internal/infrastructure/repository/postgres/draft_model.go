package postgres

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/turugol/quiniela/internal/domain/draft"
	"github.com/turugol/quiniela/internal/domain/league"
)

type draftTableModel struct {
	OrganizerID string     `db:"organizer_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Deadline    *time.Time `db:"deadline"`
	LeagueID    int64      `db:"league_id"`
	Round       string     `db:"round"`
	Matches     []byte     `db:"matches"`
	Leagues     []byte     `db:"leagues"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type leagueDoc struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url"`
}

func draftToRow(item draft.Draft) (draftTableModel, error) {
	matchesJSON, err := jsoniter.Marshal(matchDocsFrom(item.Matches))
	if err != nil {
		return draftTableModel{}, fmt.Errorf("marshal draft matches: %w", err)
	}

	leagueDocs := make([]leagueDoc, 0, len(item.Leagues))
	for _, lg := range item.Leagues {
		leagueDocs = append(leagueDocs, leagueDoc{
			ID:        lg.ID,
			Name:      lg.Name,
			ShortName: lg.ShortName,
			LogoURL:   lg.LogoURL,
		})
	}
	leaguesJSON, err := jsoniter.Marshal(leagueDocs)
	if err != nil {
		return draftTableModel{}, fmt.Errorf("marshal draft leagues: %w", err)
	}

	row := draftTableModel{
		OrganizerID: item.OrganizerID,
		Title:       item.Title,
		Description: item.Description,
		LeagueID:    item.LeagueID,
		Round:       item.Round,
		Matches:     matchesJSON,
		Leagues:     leaguesJSON,
		UpdatedAt:   item.UpdatedAt,
	}
	if !item.Deadline.IsZero() {
		deadline := item.Deadline
		row.Deadline = &deadline
	}

	return row, nil
}

func draftFromRow(row draftTableModel) (draft.Draft, error) {
	var matchDocs []matchDoc
	if len(row.Matches) > 0 {
		if err := jsoniter.Unmarshal(row.Matches, &matchDocs); err != nil {
			return draft.Draft{}, fmt.Errorf("unmarshal draft matches: %w", err)
		}
	}

	var leagueDocs []leagueDoc
	if len(row.Leagues) > 0 {
		if err := jsoniter.Unmarshal(row.Leagues, &leagueDocs); err != nil {
			return draft.Draft{}, fmt.Errorf("unmarshal draft leagues: %w", err)
		}
	}

	leagues := make([]league.League, 0, len(leagueDocs))
	for _, doc := range leagueDocs {
		leagues = append(leagues, league.League{
			ID:        doc.ID,
			Name:      doc.Name,
			ShortName: doc.ShortName,
			LogoURL:   doc.LogoURL,
		})
	}

	item := draft.Draft{
		OrganizerID: row.OrganizerID,
		Title:       row.Title,
		Description: row.Description,
		LeagueID:    row.LeagueID,
		Round:       row.Round,
		Matches:     matchesFromDocs(matchDocs),
		Leagues:     leagues,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Deadline != nil {
		item.Deadline = *row.Deadline
	}

	return item, nil
}
