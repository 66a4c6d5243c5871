package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/turugol/quiniela/internal/domain/draft"
	"github.com/turugol/quiniela/internal/platform/logging"
)

const (
	// DefaultAutosaveDelay is how long edits may coalesce before the
	// draft is written out.
	DefaultAutosaveDelay = 1500 * time.Millisecond

	autosaveFlushTimeout = 5 * time.Second
)

type pendingSave struct {
	seq   uint64
	draft draft.Draft
	timer *time.Timer
}

// AutosaveQueue debounces draft writes per organizer. Each Enqueue
// replaces the organizer's pending snapshot and restarts the delay;
// only the latest snapshot reaches the repository. Empty drafts are
// never persisted.
type AutosaveQueue struct {
	repo   draft.Repository
	delay  time.Duration
	logger *logging.Logger

	mu      sync.Mutex
	pending map[string]*pendingSave
	seq     uint64
	closed  bool

	wg conc.WaitGroup
}

func NewAutosaveQueue(repo draft.Repository, delay time.Duration, logger *logging.Logger) *AutosaveQueue {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AutosaveQueue{
		repo:    repo,
		delay:   delay,
		logger:  logger,
		pending: make(map[string]*pendingSave),
	}
}

// Enqueue schedules d for persistence after the debounce delay. An
// empty draft cancels any pending write instead.
func (q *AutosaveQueue) Enqueue(organizerID string, d draft.Draft) error {
	if organizerID == "" {
		return fmt.Errorf("%w: organizer_id is required", ErrInvalidInput)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return fmt.Errorf("autosave queue is closed")
	}

	if p, ok := q.pending[organizerID]; ok {
		p.timer.Stop()
	}

	if d.Empty() {
		delete(q.pending, organizerID)
		return nil
	}

	q.seq++
	seq := q.seq
	p := &pendingSave{seq: seq, draft: d.Clone()}
	p.timer = time.AfterFunc(q.delay, func() {
		q.wg.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), autosaveFlushTimeout)
			defer cancel()
			q.flush(ctx, organizerID, seq)
		})
	})
	q.pending[organizerID] = p

	return nil
}

// Pending returns the organizer's not-yet-persisted snapshot, if any.
// Readers must consult this before the repository or they may observe
// state up to one debounce window stale.
func (q *AutosaveQueue) Pending(organizerID string) (draft.Draft, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[organizerID]
	if !ok {
		return draft.Draft{}, false
	}
	return p.draft.Clone(), true
}

// Flush persists the organizer's pending snapshot immediately.
func (q *AutosaveQueue) Flush(ctx context.Context, organizerID string) error {
	q.mu.Lock()
	p, ok := q.pending[organizerID]
	if !ok {
		q.mu.Unlock()
		return nil
	}
	p.timer.Stop()
	seq := p.seq
	snapshot := p.draft.Clone()
	q.mu.Unlock()

	if err := q.repo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("flush draft autosave: %w", err)
	}

	q.clearIfCurrent(organizerID, seq)
	return nil
}

// Discard drops any pending write without persisting it.
func (q *AutosaveQueue) Discard(organizerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if p, ok := q.pending[organizerID]; ok {
		p.timer.Stop()
		delete(q.pending, organizerID)
	}
}

// Close stops accepting edits, flushes everything still pending and
// waits for in-flight writes.
func (q *AutosaveQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	remaining := make(map[string]uint64, len(q.pending))
	for organizerID, p := range q.pending {
		p.timer.Stop()
		remaining[organizerID] = p.seq
	}
	q.mu.Unlock()

	for organizerID, seq := range remaining {
		organizerID, seq := organizerID, seq
		q.wg.Go(func() {
			q.flush(ctx, organizerID, seq)
		})
	}

	q.wg.Wait()
	return nil
}

func (q *AutosaveQueue) flush(ctx context.Context, organizerID string, seq uint64) {
	q.mu.Lock()
	p, ok := q.pending[organizerID]
	if !ok || p.seq != seq {
		q.mu.Unlock()
		return
	}
	snapshot := p.draft.Clone()
	q.mu.Unlock()

	if err := q.repo.Upsert(ctx, snapshot); err != nil {
		// Snapshot stays pending so the next edit or Flush retries it.
		q.logger.ErrorContext(ctx, "draft autosave failed",
			"organizer_id", organizerID,
			"error", err,
		)
		return
	}

	q.clearIfCurrent(organizerID, seq)
}

func (q *AutosaveQueue) clearIfCurrent(organizerID string, seq uint64) {
	q.mu.Lock()
	if p, ok := q.pending[organizerID]; ok && p.seq == seq {
		delete(q.pending, organizerID)
	}
	q.mu.Unlock()
}
