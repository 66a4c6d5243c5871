package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold, halfOpenMax int, openTimeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := testBreaker(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("Allow() before threshold: %v", err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() after threshold = %v, want ErrCircuitOpen", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("State() = %q, want open", got)
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	b, now := testBreaker(1, 2, time.Minute)

	b.RecordFailure()
	*now = now.Add(2 * time.Minute)

	if got := b.State(); got != CircuitStateHalfOpen {
		t.Fatalf("State() after cooldown = %q, want half_open", got)
	}

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("probe %d rejected: %v", i, err)
		}
		b.RecordSuccess()
	}

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("State() after probes = %q, want closed", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := testBreaker(1, 1, time.Minute)

	b.RecordFailure()
	*now = now.Add(2 * time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe rejected: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Allow() after failed probe = %v, want ErrCircuitOpen", err)
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, now := testBreaker(1, 1, time.Minute)

	b.RecordFailure()
	*now = now.Add(2 * time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe rejected: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second concurrent probe = %v, want ErrCircuitOpen", err)
	}
}
