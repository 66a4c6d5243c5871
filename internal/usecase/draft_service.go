package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/turugol/quiniela/internal/domain/draft"
	"github.com/turugol/quiniela/internal/domain/league"
	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/platform/id"
)

// DeadlineLead is how long before the earliest kickoff submissions
// close.
const DeadlineLead = 5 * time.Minute

type UpdateDraftInput struct {
	OrganizerID string
	Title       *string
	Description *string
	Deadline    *time.Time
	LeagueID    *int64
	Round       *string
}

// DraftService curates an organizer's single work-in-progress pool.
// Edits coalesce through the autosave queue; reads prefer the queued
// snapshot over the repository.
type DraftService struct {
	draftRepo draft.Repository
	poolRepo  pool.Repository
	queue     *AutosaveQueue
	idGen     id.Generator
	now       func() time.Time
}

func NewDraftService(
	draftRepo draft.Repository,
	poolRepo pool.Repository,
	queue *AutosaveQueue,
	idGen id.Generator,
) *DraftService {
	return &DraftService{
		draftRepo: draftRepo,
		poolRepo:  poolRepo,
		queue:     queue,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Load returns the organizer's draft, creating a fresh one seeded
// with the default league catalog when none exists yet. A fresh
// draft is not persisted until it has content.
func (s *DraftService) Load(ctx context.Context, organizerID string) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.Load")
	defer span.End()

	organizerID = strings.TrimSpace(organizerID)
	if organizerID == "" {
		return draft.Draft{}, fmt.Errorf("%w: organizer_id is required", ErrInvalidInput)
	}

	if pending, ok := s.queue.Pending(organizerID); ok {
		return pending, nil
	}

	item, exists, err := s.draftRepo.GetByOrganizer(ctx, organizerID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get draft by organizer: %w", err)
	}
	if exists {
		return item, nil
	}

	leagues := league.DefaultLeagues()
	return draft.Draft{
		OrganizerID: organizerID,
		LeagueID:    leagues[0].ID,
		Leagues:     leagues,
		UpdatedAt:   s.now().UTC(),
	}, nil
}

// Update applies a partial edit. A manually supplied deadline is only
// honored while no matches are selected; once matches exist the
// deadline is derived from kickoffs.
func (s *DraftService) Update(ctx context.Context, input UpdateDraftInput) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.Update")
	defer span.End()

	current, err := s.Load(ctx, input.OrganizerID)
	if err != nil {
		return draft.Draft{}, err
	}

	if input.Title != nil {
		current.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if len([]rune(desc)) > draft.DescriptionMaxLen {
			return draft.Draft{}, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, draft.DescriptionMaxLen)
		}
		current.Description = desc
	}
	if input.Deadline != nil && len(current.Matches) == 0 {
		current.Deadline = *input.Deadline
	}
	if input.LeagueID != nil && *input.LeagueID != current.LeagueID {
		if !current.HasLeague(*input.LeagueID) {
			return draft.Draft{}, fmt.Errorf("%w: league=%d is not in the draft", ErrNotFound, *input.LeagueID)
		}
		current.LeagueID = *input.LeagueID
		current.Round = ""
	}
	if input.Round != nil {
		current.Round = strings.TrimSpace(*input.Round)
	}

	return s.save(current)
}

// ToggleMatch adds the match to the selection, or removes it when
// already selected. The deadline follows the earliest kickoff.
func (s *DraftService) ToggleMatch(ctx context.Context, organizerID string, m pool.Match) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.ToggleMatch")
	defer span.End()

	if strings.TrimSpace(m.ID) == "" {
		return draft.Draft{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	current, err := s.Load(ctx, organizerID)
	if err != nil {
		return draft.Draft{}, err
	}

	if current.HasMatch(m.ID) {
		kept := current.Matches[:0:0]
		for _, existing := range current.Matches {
			if existing.ID != m.ID {
				kept = append(kept, existing)
			}
		}
		current.Matches = kept
	} else {
		if len(current.Matches) >= pool.MaxMatches {
			return draft.Draft{}, fmt.Errorf("%w: a pool holds at most %d matches", ErrMatchLimitReached, pool.MaxMatches)
		}
		if m.KickoffAt.IsZero() {
			return draft.Draft{}, fmt.Errorf("%w: match kickoff is required", ErrInvalidInput)
		}
		current.Matches = append(current.Matches, m)
	}

	if deadline, ok := deadlineForMatches(current.Matches); ok {
		current.Deadline = deadline
	}

	return s.save(current)
}

// AddLeague registers another league the organizer can pick matches
// from.
func (s *DraftService) AddLeague(ctx context.Context, organizerID string, lg league.League) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.AddLeague")
	defer span.End()

	if err := lg.Validate(); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if lg.ShortName == "" {
		lg.ShortName = league.ShortNameFor(lg.Name)
	}

	current, err := s.Load(ctx, organizerID)
	if err != nil {
		return draft.Draft{}, err
	}

	if current.HasLeague(lg.ID) {
		return draft.Draft{}, fmt.Errorf("%w: league=%d", ErrLeagueAlreadyAdded, lg.ID)
	}

	current.Leagues = append(current.Leagues, lg)
	return s.save(current)
}

// RemoveLeague drops a league from the draft. The last league cannot
// be removed; removing the selected one reselects the first remaining.
func (s *DraftService) RemoveLeague(ctx context.Context, organizerID string, leagueID int64) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.RemoveLeague")
	defer span.End()

	current, err := s.Load(ctx, organizerID)
	if err != nil {
		return draft.Draft{}, err
	}

	if !current.HasLeague(leagueID) {
		return draft.Draft{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	if len(current.Leagues) <= 1 {
		return draft.Draft{}, ErrMinimumLeagues
	}

	kept := current.Leagues[:0:0]
	for _, lg := range current.Leagues {
		if lg.ID != leagueID {
			kept = append(kept, lg)
		}
	}
	current.Leagues = kept

	if current.LeagueID == leagueID {
		current.LeagueID = current.Leagues[0].ID
		current.Round = ""
	}

	return s.save(current)
}

// Publish snapshots the draft into an immutable open pool and removes
// the draft. The draft must carry a title, a resolved deadline and a
// full slate of matches.
func (s *DraftService) Publish(ctx context.Context, organizerID string) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.Publish")
	defer span.End()

	current, err := s.Load(ctx, organizerID)
	if err != nil {
		return pool.Pool{}, err
	}

	if strings.TrimSpace(current.Title) == "" {
		return pool.Pool{}, fmt.Errorf("%w: title is required", ErrDraftNotPublishable)
	}
	if len(current.Matches) != pool.MaxMatches {
		return pool.Pool{}, fmt.Errorf("%w: exactly %d matches are required, have %d", ErrDraftNotPublishable, pool.MaxMatches, len(current.Matches))
	}
	if current.Deadline.IsZero() {
		return pool.Pool{}, fmt.Errorf("%w: deadline is required", ErrDraftNotPublishable)
	}
	if !current.Deadline.After(s.now()) {
		return pool.Pool{}, fmt.Errorf("%w: deadline is already past", ErrDraftNotPublishable)
	}

	poolID, err := s.idGen.NewID()
	if err != nil {
		return pool.Pool{}, fmt.Errorf("generate pool id: %w", err)
	}

	fixtures := make([]pool.Match, len(current.Matches))
	copy(fixtures, current.Matches)
	for i := range fixtures {
		fixtures[i].Result = nil
	}

	item := pool.Pool{
		ID: poolID,
		Metadata: pool.Metadata{
			Title:       current.Title,
			Description: current.Description,
			Deadline:    current.Deadline,
			OrganizerID: current.OrganizerID,
			CreatedAt:   s.now().UTC(),
			Status:      pool.StatusOpen,
		},
		Fixtures: fixtures,
	}

	if err := item.Validate(); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: %v", ErrDraftNotPublishable, err)
	}

	if err := s.poolRepo.Create(ctx, item); err != nil {
		return pool.Pool{}, fmt.Errorf("create pool: %w", err)
	}

	s.queue.Discard(current.OrganizerID)
	if err := s.draftRepo.Delete(ctx, current.OrganizerID); err != nil {
		return pool.Pool{}, fmt.Errorf("delete draft after publish: %w", err)
	}

	return item, nil
}

// Abandon discards the draft entirely.
func (s *DraftService) Abandon(ctx context.Context, organizerID string) error {
	ctx, span := startUsecaseSpan(ctx, "DraftService.Abandon")
	defer span.End()

	organizerID = strings.TrimSpace(organizerID)
	if organizerID == "" {
		return fmt.Errorf("%w: organizer_id is required", ErrInvalidInput)
	}

	s.queue.Discard(organizerID)
	if err := s.draftRepo.Delete(ctx, organizerID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	return nil
}

func (s *DraftService) save(d draft.Draft) (draft.Draft, error) {
	d.UpdatedAt = s.now().UTC()
	if err := s.queue.Enqueue(d.OrganizerID, d); err != nil {
		return draft.Draft{}, fmt.Errorf("enqueue draft autosave: %w", err)
	}
	return d, nil
}

func deadlineForMatches(matches []pool.Match) (time.Time, bool) {
	if len(matches) == 0 {
		return time.Time{}, false
	}

	earliest := matches[0].KickoffAt
	for _, m := range matches[1:] {
		if m.KickoffAt.Before(earliest) {
			earliest = m.KickoffAt
		}
	}

	return earliest.Add(-DeadlineLead), true
}
