package memory

import (
	"fmt"
	"time"

	"github.com/turugol/quiniela/internal/domain/pool"
)

const SeedPoolID = "pool-liga-mx-j9"

// SeedPools returns a sample published pool for local development
// against the in-memory store. Kickoffs are placed relative to the
// current time so the pool is always open for submissions.
func SeedPools() []pool.Pool {
	kickoff := time.Now().UTC().Add(11 * 24 * time.Hour).Truncate(time.Hour)

	pairings := [][2]string{
		{"América", "Chivas"},
		{"Cruz Azul", "Pumas"},
		{"Tigres", "Monterrey"},
		{"Toluca", "Atlas"},
		{"Santos", "León"},
		{"Pachuca", "Puebla"},
		{"Tijuana", "Necaxa"},
		{"Juárez", "Querétaro"},
		{"Mazatlán", "San Luis"},
	}

	fixtures := make([]pool.Match, 0, len(pairings))
	for i, p := range pairings {
		fixtures = append(fixtures, pool.Match{
			ID:         fmt.Sprintf("seed-fx-%02d", i+1),
			LeagueID:   262,
			LeagueName: "Liga MX",
			Round:      "Jornada 9",
			HomeTeam:   p[0],
			AwayTeam:   p[1],
			KickoffAt:  kickoff.Add(time.Duration(i) * 2 * time.Hour),
		})
	}

	return []pool.Pool{
		{
			ID: SeedPoolID,
			Metadata: pool.Metadata{
				Title:       "Quiniela Liga MX Jornada 9",
				Description: "Pozo semanal entre amigos",
				Deadline:    kickoff.Add(-5 * time.Minute),
				OrganizerID: "seed-organizer",
				CreatedAt:   kickoff.Add(-7 * 24 * time.Hour),
				Status:      pool.StatusOpen,
			},
			Fixtures: fixtures,
		},
	}
}
