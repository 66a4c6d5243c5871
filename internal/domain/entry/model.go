package entry

import (
	"time"

	"github.com/turugol/quiniela/internal/domain/picks"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusActive         = "active"
	StatusFinalized      = "finalized"
)

// Entry is one player's priced prediction set for a pool. Selections are
// immutable after creation; Score and Status are advanced by external
// reconciliation and settlement processes.
type Entry struct {
	ID           string
	PoolID       string
	UserID       string
	UserName     string
	Selections   picks.Selections
	Stake        int64
	Combinations int
	Status       string
	Score        int
	CreatedAt    time.Time
}
