package draft

import (
	"time"

	"github.com/turugol/quiniela/internal/domain/league"
	"github.com/turugol/quiniela/internal/domain/pool"
)

const DescriptionMaxLen = 200

// Draft is an organizer's in-progress pool configuration. One draft per
// organizer; it exists only until published or abandoned.
type Draft struct {
	OrganizerID string
	Title       string
	Description string
	Deadline    time.Time
	LeagueID    int64
	Round       string
	Matches     []pool.Match
	Leagues     []league.League
	UpdatedAt   time.Time
}

// Empty reports whether the draft carries nothing worth persisting.
func (d Draft) Empty() bool {
	return d.Title == "" && len(d.Matches) == 0
}

func (d Draft) HasMatch(matchID string) bool {
	for _, m := range d.Matches {
		if m.ID == matchID {
			return true
		}
	}
	return false
}

func (d Draft) HasLeague(leagueID int64) bool {
	for _, l := range d.Leagues {
		if l.ID == leagueID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate freely.
func (d Draft) Clone() Draft {
	copied := d
	copied.Matches = append([]pool.Match(nil), d.Matches...)
	copied.Leagues = append([]league.League(nil), d.Leagues...)
	return copied
}
