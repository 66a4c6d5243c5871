package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/pool"
)

// RankedEntry is one leaderboard row. Ranks are consecutive positions,
// not competition ranks: entries with equal scores occupy adjacent
// positions in submission order.
type RankedEntry struct {
	Rank  int
	Entry entry.Entry
}

type RankingService struct {
	poolRepo  pool.Repository
	entryRepo entry.Repository
}

func NewRankingService(poolRepo pool.Repository, entryRepo entry.Repository) *RankingService {
	return &RankingService{
		poolRepo:  poolRepo,
		entryRepo: entryRepo,
	}
}

// Leaderboard returns the pool's entries ranked by score. A pool with
// no entries yields an empty board; an unknown pool is an error.
func (s *RankingService) Leaderboard(ctx context.Context, poolID string) ([]RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingService.Leaderboard")
	defer span.End()

	poolID = strings.TrimSpace(poolID)
	if poolID == "" {
		return nil, fmt.Errorf("%w: pool_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.poolRepo.GetByID(ctx, poolID); err != nil {
		return nil, fmt.Errorf("get pool by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: pool=%s", ErrNotFound, poolID)
	}

	entries, err := s.entryRepo.ListByPoolScoreDesc(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("list entries by pool: %w", err)
	}

	board := make([]RankedEntry, len(entries))
	for i, item := range entries {
		board[i] = RankedEntry{Rank: i + 1, Entry: item}
	}

	return board, nil
}
