package httpapi

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/turugol/quiniela/internal/domain/draft"
	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/league"
	"github.com/turugol/quiniela/internal/domain/picks"
	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/usecase"
)

func decodeJSONBody(body io.Reader, target any) error {
	decoder := jsoniter.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	LogoURL   string `json:"logoUrl"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:        l.ID,
		Name:      l.Name,
		ShortName: l.ShortName,
		LogoURL:   l.LogoURL,
	}
}

type matchDTO struct {
	ID           string  `json:"id"`
	LeagueID     int64   `json:"leagueId"`
	LeagueName   string  `json:"leagueName"`
	Round        string  `json:"round"`
	HomeTeam     string  `json:"homeTeam"`
	AwayTeam     string  `json:"awayTeam"`
	HomeLogoURL  string  `json:"homeLogoUrl"`
	AwayLogoURL  string  `json:"awayLogoUrl"`
	KickoffAtUTC string  `json:"kickoffAtUtc"`
	Result       *string `json:"result,omitempty"`
}

func matchToDTO(m pool.Match) matchDTO {
	dto := matchDTO{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		LeagueName:   m.LeagueName,
		Round:        m.Round,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		HomeLogoURL:  m.HomeLogoURL,
		AwayLogoURL:  m.AwayLogoURL,
		KickoffAtUTC: m.KickoffAt.UTC().Format(time.RFC3339),
	}
	if m.Result != nil {
		result := string(*m.Result)
		dto.Result = &result
	}
	return dto
}

func matchesToDTOs(matches []pool.Match) []matchDTO {
	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	return items
}

type quoteDTO struct {
	Doubles      int   `json:"doubles"`
	Triples      int   `json:"triples"`
	Combinations int   `json:"combinations"`
	Stake        int64 `json:"stake"`
}

func quoteToDTO(q picks.Quote) quoteDTO {
	return quoteDTO{
		Doubles:      q.Doubles,
		Triples:      q.Triples,
		Combinations: q.Combinations,
		Stake:        q.Stake,
	}
}

type draftDTO struct {
	OrganizerID  string      `json:"organizerId"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DeadlineUTC  string      `json:"deadlineUtc,omitempty"`
	LeagueID     int64       `json:"leagueId"`
	Round        string      `json:"round,omitempty"`
	Matches      []matchDTO  `json:"matches"`
	Leagues      []leagueDTO `json:"leagues"`
	UpdatedAtUTC string      `json:"updatedAtUtc,omitempty"`
}

func draftToDTO(d draft.Draft) draftDTO {
	dto := draftDTO{
		OrganizerID: d.OrganizerID,
		Title:       d.Title,
		Description: d.Description,
		LeagueID:    d.LeagueID,
		Round:       d.Round,
		Matches:     matchesToDTOs(d.Matches),
		Leagues:     make([]leagueDTO, 0, len(d.Leagues)),
	}
	for _, l := range d.Leagues {
		dto.Leagues = append(dto.Leagues, leagueToDTO(l))
	}
	if !d.Deadline.IsZero() {
		dto.DeadlineUTC = d.Deadline.UTC().Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		dto.UpdatedAtUTC = d.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

type poolDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	OrganizerID  string     `json:"organizerId"`
	DeadlineUTC  string     `json:"deadlineUtc"`
	CreatedAtUTC string     `json:"createdAtUtc"`
	Fixtures     []matchDTO `json:"fixtures,omitempty"`
}

func poolToDTO(p pool.Pool, includeFixtures bool) poolDTO {
	dto := poolDTO{
		ID:           p.ID,
		Title:        p.Metadata.Title,
		Description:  p.Metadata.Description,
		Status:       p.Metadata.Status,
		OrganizerID:  p.Metadata.OrganizerID,
		DeadlineUTC:  p.Metadata.Deadline.UTC().Format(time.RFC3339),
		CreatedAtUTC: p.Metadata.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeFixtures {
		dto.Fixtures = matchesToDTOs(p.Fixtures)
	}
	return dto
}

type entryDTO struct {
	ID               string              `json:"id"`
	PoolID           string              `json:"poolId"`
	UserID           string              `json:"userId"`
	UserName         string              `json:"userName"`
	Selections       map[string][]string `json:"selections"`
	Stake            int64               `json:"stake"`
	Combinations     int                 `json:"combinations"`
	Status           string              `json:"status"`
	Score            int                 `json:"score"`
	PaymentReference string              `json:"paymentReference"`
	CreatedAtUTC     string              `json:"createdAtUtc"`
}

func entryToDTO(e entry.Entry) entryDTO {
	selections := make(map[string][]string, len(e.Selections))
	for matchID, outcomes := range e.Selections {
		values := make([]string, 0, len(outcomes))
		for _, outcome := range outcomes {
			values = append(values, string(outcome))
		}
		selections[matchID] = values
	}

	return entryDTO{
		ID:               e.ID,
		PoolID:           e.PoolID,
		UserID:           e.UserID,
		UserName:         e.UserName,
		Selections:       selections,
		Stake:            e.Stake,
		Combinations:     e.Combinations,
		Status:           e.Status,
		Score:            e.Score,
		PaymentReference: usecase.PaymentReference(e.UserName, e.UserID),
		CreatedAtUTC:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type leaderboardRowDTO struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Score    int    `json:"score"`
}

func selectionsFromRequest(raw map[string][]string) (picks.Selections, error) {
	selections := make(picks.Selections, len(raw))
	for matchID, values := range raw {
		outcomes := make([]pool.Outcome, 0, len(values))
		for _, value := range values {
			outcome, ok := pool.ParseOutcome(value)
			if !ok {
				return nil, fmt.Errorf("%w: unknown outcome %q for match %s", usecase.ErrInvalidInput, value, matchID)
			}
			outcomes = append(outcomes, outcome)
		}
		selections[matchID] = outcomes
	}

	return selections, nil
}
