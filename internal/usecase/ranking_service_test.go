package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/infrastructure/repository/memory"
)

func TestRankingService_Leaderboard_RanksWithoutTieCollapse(t *testing.T) {
	seeded := memory.SeedPools()[0]
	poolRepo := memory.NewPoolRepository(seeded)
	entryRepo := memory.NewEntryRepository()
	service := NewRankingService(poolRepo, entryRepo)

	scores := []int{30, 10, 30}
	for i, score := range scores {
		item := entry.Entry{
			ID:        fmt.Sprintf("entry-%d", i+1),
			PoolID:    seeded.ID,
			UserID:    fmt.Sprintf("user-%d", i+1),
			Status:    entry.StatusActive,
			Score:     score,
			CreatedAt: time.Date(2026, 9, 10, 12, i, 0, 0, time.UTC),
		}
		if err := entryRepo.Create(t.Context(), item); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	board, err := service.Leaderboard(t.Context(), seeded.ID)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	if len(board) != 3 {
		t.Fatalf("board size = %d, want 3", len(board))
	}

	wantUsers := []string{"user-1", "user-3", "user-2"}
	for i, row := range board {
		if row.Rank != i+1 {
			t.Fatalf("row %d rank = %d, want %d", i, row.Rank, i+1)
		}
		if row.Entry.UserID != wantUsers[i] {
			t.Fatalf("row %d user = %q, want %q", i, row.Entry.UserID, wantUsers[i])
		}
	}
}

func TestRankingService_Leaderboard_EmptyPool(t *testing.T) {
	seeded := memory.SeedPools()[0]
	service := NewRankingService(memory.NewPoolRepository(seeded), memory.NewEntryRepository())

	board, err := service.Leaderboard(t.Context(), seeded.ID)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 0 {
		t.Fatalf("board size = %d, want 0", len(board))
	}
}

func TestRankingService_Leaderboard_UnknownPool(t *testing.T) {
	service := NewRankingService(memory.NewPoolRepository(), memory.NewEntryRepository())

	if _, err := service.Leaderboard(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
