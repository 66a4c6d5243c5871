package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/platform/cache"
	"github.com/turugol/quiniela/internal/platform/logging"
)

const fixtureStatusNotStarted = "NS"

// FootballDataProvider is the port to the external fixtures feed.
type FootballDataProvider interface {
	FetchLeagues(ctx context.Context, season int) ([]ExternalLeague, error)
	FetchLeague(ctx context.Context, leagueID int64, season int) (ExternalLeague, error)
	FetchRounds(ctx context.Context, leagueID int64, season int) ([]string, string, error)
	FetchFixtures(ctx context.Context, leagueID int64, season int, round string) ([]ExternalFixture, error)
}

type ExternalLeague struct {
	ExternalID int64
	Name       string
	LogoURL    string
	Country    string
}

type ExternalFixture struct {
	ExternalID   int64
	LeagueID     int64
	LeagueName   string
	Round        string
	HomeTeamName string
	AwayTeamName string
	HomeLogoURL  string
	AwayLogoURL  string
	KickoffAt    time.Time
	Status       string
}

// CatalogService serves the league and fixture browsing data an
// organizer picks matches from. Provider responses are cached; only
// fixtures that have not kicked off are offered.
type CatalogService struct {
	provider FootballDataProvider
	store    *cache.Store
	workers  *ants.Pool
	logger   *logging.Logger
	season   int
	now      func() time.Time
}

func NewCatalogService(
	provider FootballDataProvider,
	store *cache.Store,
	workers *ants.Pool,
	logger *logging.Logger,
	season int,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		provider: provider,
		store:    store,
		workers:  workers,
		logger:   logger,
		season:   season,
		now:      time.Now,
	}
}

// Leagues lists the provider leagues available for the season.
func (s *CatalogService) Leagues(ctx context.Context) ([]ExternalLeague, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Leagues")
	defer span.End()

	value, err := s.store.GetOrLoad(ctx, s.cacheKey("leagues", 0, ""), func(ctx context.Context) (any, error) {
		return s.provider.FetchLeagues(ctx, s.season)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch leagues: %v", ErrDependencyUnavailable, err)
	}

	leagues := value.([]ExternalLeague)
	return append([]ExternalLeague(nil), leagues...), nil
}

// League resolves display data for one provider league.
func (s *CatalogService) League(ctx context.Context, leagueID int64) (ExternalLeague, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.League")
	defer span.End()

	if leagueID <= 0 {
		return ExternalLeague{}, fmt.Errorf("%w: league_id must be greater than zero", ErrInvalidInput)
	}

	value, err := s.store.GetOrLoad(ctx, s.cacheKey("league", leagueID, ""), func(ctx context.Context) (any, error) {
		return s.provider.FetchLeague(ctx, leagueID, s.season)
	})
	if err != nil {
		return ExternalLeague{}, fmt.Errorf("%w: fetch league %d: %v", ErrDependencyUnavailable, leagueID, err)
	}

	return value.(ExternalLeague), nil
}

// Rounds lists the league's rounds plus the round to preselect: the
// provider's current round when known, otherwise the last one.
func (s *CatalogService) Rounds(ctx context.Context, leagueID int64) ([]string, string, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.Rounds")
	defer span.End()

	if leagueID <= 0 {
		return nil, "", fmt.Errorf("%w: league_id must be greater than zero", ErrInvalidInput)
	}

	type roundsResult struct {
		rounds  []string
		current string
	}

	value, err := s.store.GetOrLoad(ctx, s.cacheKey("rounds", leagueID, ""), func(ctx context.Context) (any, error) {
		rounds, current, err := s.provider.FetchRounds(ctx, leagueID, s.season)
		if err != nil {
			return nil, err
		}
		return roundsResult{rounds: rounds, current: current}, nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetch rounds for league %d: %v", ErrDependencyUnavailable, leagueID, err)
	}

	result := value.(roundsResult)
	preselect := result.current
	if preselect == "" && len(result.rounds) > 0 {
		preselect = result.rounds[len(result.rounds)-1]
	}

	return append([]string(nil), result.rounds...), preselect, nil
}

// UpcomingFixtures returns the round's fixtures still open for
// selection, as pool matches ready to toggle into a draft.
func (s *CatalogService) UpcomingFixtures(ctx context.Context, leagueID int64, round string) ([]pool.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.UpcomingFixtures")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league_id must be greater than zero", ErrInvalidInput)
	}
	round = strings.TrimSpace(round)
	if round == "" {
		return nil, fmt.Errorf("%w: round is required", ErrInvalidInput)
	}

	value, err := s.store.GetOrLoad(ctx, s.cacheKey("fixtures", leagueID, round), func(ctx context.Context) (any, error) {
		return s.provider.FetchFixtures(ctx, leagueID, s.season, round)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch fixtures for league %d round %s: %v", ErrDependencyUnavailable, leagueID, round, err)
	}

	fixtures := value.([]ExternalFixture)
	now := s.now()

	out := make([]pool.Match, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Status != fixtureStatusNotStarted || !f.KickoffAt.After(now) {
			continue
		}
		out = append(out, pool.Match{
			ID:          strconv.FormatInt(f.ExternalID, 10),
			LeagueID:    f.LeagueID,
			LeagueName:  f.LeagueName,
			Round:       f.Round,
			HomeTeam:    f.HomeTeamName,
			AwayTeam:    f.AwayTeamName,
			HomeLogoURL: f.HomeLogoURL,
			AwayLogoURL: f.AwayLogoURL,
			KickoffAt:   f.KickoffAt,
		})
	}

	return out, nil
}

// WarmFixtures preloads the fixture cache for several leagues in the
// background. Failures are logged and skipped.
func (s *CatalogService) WarmFixtures(ctx context.Context, leagueIDs []int64) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.WarmFixtures")
	defer span.End()

	for _, leagueID := range leagueIDs {
		leagueID := leagueID
		task := func() {
			_, current, err := s.Rounds(ctx, leagueID)
			if err != nil {
				s.logger.WarnContext(ctx, "warm rounds failed", "league_id", leagueID, "error", err)
				return
			}
			if current == "" {
				return
			}
			if _, err := s.UpcomingFixtures(ctx, leagueID, current); err != nil {
				s.logger.WarnContext(ctx, "warm fixtures failed", "league_id", leagueID, "error", err)
			}
		}

		if s.workers == nil {
			go task()
			continue
		}
		if err := s.workers.Submit(task); err != nil {
			s.logger.WarnContext(ctx, "submit warm task failed", "league_id", leagueID, "error", err)
		}
	}
}

func (s *CatalogService) cacheKey(kind string, leagueID int64, round string) string {
	key := kind + "::" + strconv.FormatInt(leagueID, 10) + "::" + strconv.Itoa(s.season)
	if round != "" {
		key += "::" + round
	}
	return key
}
