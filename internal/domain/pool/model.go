package pool

import (
	"fmt"
	"strings"
	"time"
)

// MaxMatches is the slate size of a published pool. A draft may hold fewer
// matches while being curated; a published pool holds exactly this many.
const MaxMatches = 9

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Outcome is a single match result a player can back.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeDraw Outcome = "DRAW"
	OutcomeAway Outcome = "AWAY"
)

var AllOutcomes = map[Outcome]struct{}{
	OutcomeHome: {},
	OutcomeDraw: {},
	OutcomeAway: {},
}

func ParseOutcome(value string) (Outcome, bool) {
	candidate := Outcome(strings.ToUpper(strings.TrimSpace(value)))
	_, ok := AllOutcomes[candidate]
	return candidate, ok
}

// Match is a fixture snapshot. Inside a published pool everything except
// Result is frozen; Result transitions once from nil to a final outcome by
// an external settlement process.
type Match struct {
	ID          string
	LeagueID    int64
	LeagueName  string
	Round       string
	HomeTeam    string
	AwayTeam    string
	HomeLogoURL string
	AwayLogoURL string
	KickoffAt   time.Time
	Result      *Outcome
}

// Metadata carries the organizer-facing pool attributes.
type Metadata struct {
	Title       string
	Description string
	Deadline    time.Time
	OrganizerID string
	CreatedAt   time.Time
	Status      string
}

// Pool is a published slate open for predictions. Structurally immutable
// after creation.
type Pool struct {
	ID       string
	Metadata Metadata
	Fixtures []Match
}

func (p Pool) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("pool id is required")
	}
	if strings.TrimSpace(p.Metadata.Title) == "" {
		return fmt.Errorf("pool title is required")
	}
	if strings.TrimSpace(p.Metadata.OrganizerID) == "" {
		return fmt.Errorf("pool organizer is required")
	}
	if p.Metadata.Deadline.IsZero() {
		return fmt.Errorf("pool deadline is required")
	}
	if p.Metadata.Status != StatusOpen && p.Metadata.Status != StatusClosed {
		return fmt.Errorf("unknown pool status %q", p.Metadata.Status)
	}
	if len(p.Fixtures) != MaxMatches {
		return fmt.Errorf("pool must hold exactly %d matches, has %d", MaxMatches, len(p.Fixtures))
	}

	seen := make(map[string]struct{}, len(p.Fixtures))
	for _, m := range p.Fixtures {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("fixture id is required")
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate fixture %s", m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}

func (p Pool) HasFixture(matchID string) bool {
	for _, m := range p.Fixtures {
		if m.ID == matchID {
			return true
		}
	}
	return false
}
