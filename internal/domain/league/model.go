package league

import (
	"fmt"
	"strings"
)

const ShortNameMaxLen = 12

// League is a football competition offered to organizers when curating a
// draft. The ID is the external data provider's league id.
type League struct {
	ID        int64
	Name      string
	ShortName string
	LogoURL   string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id must be greater than zero")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// ShortNameFor derives the display short name used for provider leagues
// added at runtime.
func ShortNameFor(name string) string {
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > ShortNameMaxLen {
		name = string(runes[:ShortNameMaxLen])
	}
	return strings.ToUpper(name)
}

// DefaultLeagues is the initial curated set every fresh draft starts from.
func DefaultLeagues() []League {
	return []League{
		{ID: 2, Name: "UEFA Champions League", ShortName: "CHAMPIONS", LogoURL: "https://media.api-sports.io/football/leagues/2.png"},
		{ID: 13, Name: "Copa Libertadores", ShortName: "LIBERTADORES", LogoURL: "https://media.api-sports.io/football/leagues/13.png"},
		{ID: 39, Name: "Premier League", ShortName: "PREMIER", LogoURL: "https://media.api-sports.io/football/leagues/39.png"},
		{ID: 140, Name: "LaLiga", ShortName: "LALIGA", LogoURL: "https://media.api-sports.io/football/leagues/140.png"},
		{ID: 135, Name: "Serie A", ShortName: "SERIE A", LogoURL: "https://media.api-sports.io/football/leagues/135.png"},
		{ID: 262, Name: "Liga MX", ShortName: "LIGA MX", LogoURL: "https://media.api-sports.io/football/leagues/262.png"},
	}
}
