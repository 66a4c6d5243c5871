package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/pool"
	entrymock "github.com/turugol/quiniela/internal/mocks/domain/entry"
	poolmock "github.com/turugol/quiniela/internal/mocks/domain/pool"
)

func TestRankingService_Leaderboard_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	poolRepo := poolmock.NewRepository(t)
	entryRepo := entrymock.NewRepository(t)
	service := NewRankingService(poolRepo, entryRepo)

	poolID := "pool-1"
	stored := []entry.Entry{
		{ID: "e1", PoolID: poolID, UserID: "user-1", Score: 21},
		{ID: "e2", PoolID: poolID, UserID: "user-2", Score: 21},
		{ID: "e3", PoolID: poolID, UserID: "user-3", Score: 7},
	}

	poolRepo.
		On("GetByID", mock.Anything, poolID).
		Return(pool.Pool{ID: poolID}, true, nil).
		Once()
	entryRepo.
		On("ListByPoolScoreDesc", mock.Anything, poolID).
		Return(stored, nil).
		Once()

	board, err := service.Leaderboard(t.Context(), poolID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("unexpected board size: got=%d want=3", len(board))
	}
	for i, row := range board {
		if row.Rank != i+1 {
			t.Fatalf("unexpected rank at %d: got=%d want=%d", i, row.Rank, i+1)
		}
	}
}

func TestRankingService_Leaderboard_RepoFailureUsingMockery(t *testing.T) {
	t.Parallel()

	poolRepo := poolmock.NewRepository(t)
	entryRepo := entrymock.NewRepository(t)
	service := NewRankingService(poolRepo, entryRepo)

	poolID := "pool-1"
	storeErr := errors.New("connection reset")

	poolRepo.
		On("GetByID", mock.Anything, poolID).
		Return(pool.Pool{ID: poolID}, true, nil).
		Once()
	entryRepo.
		On("ListByPoolScoreDesc", mock.Anything, poolID).
		Return(nil, storeErr).
		Once()

	if _, err := service.Leaderboard(t.Context(), poolID); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
