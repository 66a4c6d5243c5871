package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/picks"
	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/platform/id"
)

const paymentReferenceIDLen = 6

type SubmitEntryInput struct {
	PoolID     string
	UserID     string
	UserName   string
	Selections picks.Selections
}

// EntryService accepts priced prediction sets into open pools. One
// entry per user per pool; pricing is fixed at submission time.
type EntryService struct {
	poolRepo  pool.Repository
	entryRepo entry.Repository
	idGen     id.Generator
	now       func() time.Time
}

func NewEntryService(poolRepo pool.Repository, entryRepo entry.Repository, idGen id.Generator) *EntryService {
	return &EntryService{
		poolRepo:  poolRepo,
		entryRepo: entryRepo,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Quote prices a possibly partial selection set against a pool without
// submitting it.
func (s *EntryService) Quote(ctx context.Context, poolID string, selections picks.Selections) (picks.Quote, error) {
	ctx, span := startUsecaseSpan(ctx, "EntryService.Quote")
	defer span.End()

	p, err := s.loadPool(ctx, poolID)
	if err != nil {
		return picks.Quote{}, err
	}

	for matchID, outcomes := range selections {
		if !p.HasFixture(matchID) {
			return picks.Quote{}, fmt.Errorf("%w: match %s is not part of pool %s", ErrInvalidInput, matchID, poolID)
		}
		if err := picks.ValidateOutcomes(matchID, outcomes); err != nil {
			return picks.Quote{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return picks.Price(selections), nil
}

// Submit validates, prices and records the user's entry. The entry is
// created awaiting payment with the quoted stake frozen in.
func (s *EntryService) Submit(ctx context.Context, input SubmitEntryInput) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "EntryService.Submit")
	defer span.End()

	input.PoolID = strings.TrimSpace(input.PoolID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.UserName = strings.TrimSpace(input.UserName)

	if input.UserID == "" {
		return entry.Entry{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	p, err := s.loadPool(ctx, input.PoolID)
	if err != nil {
		return entry.Entry{}, err
	}

	now := s.now()
	if p.Metadata.Status != pool.StatusOpen || !now.Before(p.Metadata.Deadline) {
		return entry.Entry{}, fmt.Errorf("%w: pool=%s", ErrSubmissionsClosed, p.ID)
	}

	if err := picks.Validate(p, input.Selections); err != nil {
		if errors.Is(err, picks.ErrMissingSelection) {
			return entry.Entry{}, fmt.Errorf("%w: %v", ErrIncompleteSelection, err)
		}
		return entry.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.entryRepo.GetByUserAndPool(ctx, input.UserID, p.ID); err != nil {
		return entry.Entry{}, fmt.Errorf("check existing entry: %w", err)
	} else if exists {
		return entry.Entry{}, fmt.Errorf("%w: user=%s pool=%s", ErrDuplicateEntry, input.UserID, p.ID)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	quote := picks.Price(input.Selections)
	item := entry.Entry{
		ID:           entryID,
		PoolID:       p.ID,
		UserID:       input.UserID,
		UserName:     input.UserName,
		Selections:   input.Selections.Clone(),
		Stake:        quote.Stake,
		Combinations: quote.Combinations,
		Status:       entry.StatusPendingPayment,
		CreatedAt:    now.UTC(),
	}

	if err := s.entryRepo.Create(ctx, item); err != nil {
		// Concurrent submits can slip past the read above; the store's
		// uniqueness guarantee is authoritative.
		if errors.Is(err, entry.ErrAlreadyExists) {
			return entry.Entry{}, fmt.Errorf("%w: user=%s pool=%s", ErrDuplicateEntry, input.UserID, p.ID)
		}
		return entry.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	return item, nil
}

func (s *EntryService) GetByUserAndPool(ctx context.Context, userID, poolID string) (entry.Entry, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "EntryService.GetByUserAndPool")
	defer span.End()

	userID = strings.TrimSpace(userID)
	poolID = strings.TrimSpace(poolID)
	if userID == "" || poolID == "" {
		return entry.Entry{}, false, fmt.Errorf("%w: user_id and pool_id are required", ErrInvalidInput)
	}

	item, exists, err := s.entryRepo.GetByUserAndPool(ctx, userID, poolID)
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("get entry by user and pool: %w", err)
	}

	return item, exists, nil
}

// PaymentReference builds the code a player attaches to their transfer
// so the organizer can match it: up to two name tokens plus a short
// user id fragment, uppercased.
func PaymentReference(displayName, userID string) string {
	tokens := strings.Fields(displayName)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}

	fragment := userID
	if len(fragment) > paymentReferenceIDLen {
		fragment = fragment[:paymentReferenceIDLen]
	}
	if fragment != "" {
		tokens = append(tokens, fragment)
	}

	return strings.ToUpper(strings.Join(tokens, " "))
}

func (s *EntryService) loadPool(ctx context.Context, poolID string) (pool.Pool, error) {
	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return pool.Pool{}, fmt.Errorf("%w: pool_id is required", ErrInvalidInput)
	}

	p, exists, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, fmt.Errorf("get pool by id: %w", err)
	}
	if !exists {
		return pool.Pool{}, fmt.Errorf("%w: pool=%s", ErrNotFound, poolID)
	}

	return p, nil
}
