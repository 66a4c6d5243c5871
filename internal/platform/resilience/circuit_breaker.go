package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker shields an upstream dependency: after a run of
// consecutive failures it rejects calls outright until a cooldown
// passes, then lets a bounded number of probes through.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
	now                 func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)

	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed. Callers must follow up
// with RecordSuccess or RecordFailure when Allow returns nil.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.state == CircuitStateOpen {
		if now.Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.transition(CircuitStateHalfOpen)
	}

	if b.state == CircuitStateHalfOpen {
		if b.halfOpenInFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.halfOpenInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.halfOpenMaxReq && b.halfOpenInFlight == 0 {
			b.transition(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.failureThreshold {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.transition(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) transition(next CircuitState) {
	b.state = next
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	switch next {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
