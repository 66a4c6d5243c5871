package picks

import (
	"errors"
	"fmt"

	"github.com/turugol/quiniela/internal/domain/pool"
)

const (
	// BasePrice is the stake of a single-outcome entry, in minor currency
	// units agnostic to the operator's currency.
	BasePrice = 100
	// MaxTriples caps matches covered with all three outcomes.
	MaxTriples = 3
	// MaxDoubles caps matches covered with two outcomes.
	MaxDoubles = 4
)

var (
	ErrTripleCapExceeded = errors.New("triple pick cap exceeded")
	ErrDoubleCapExceeded = errors.New("double pick cap exceeded")
	ErrUnknownOutcome    = errors.New("unknown outcome")
	ErrUnknownMatch      = errors.New("match is not part of the pool")
	ErrMissingSelection  = errors.New("match has no selection")
	ErrSelectionOverflow = errors.New("match has more than three outcomes selected")
)

// Selections maps a match id to the set of outcomes the player backs for
// it. Order within a set is the order the player picked in.
type Selections map[string][]pool.Outcome

func (s Selections) Clone() Selections {
	if s == nil {
		return nil
	}
	out := make(Selections, len(s))
	for matchID, outcomes := range s {
		out[matchID] = append([]pool.Outcome(nil), outcomes...)
	}
	return out
}

func (s Selections) contains(matchID string, outcome pool.Outcome) bool {
	for _, existing := range s[matchID] {
		if existing == outcome {
			return true
		}
	}
	return false
}

// Toggle returns a new selection set with the outcome flipped for the
// match. Removing an outcome is always allowed; adding one is rejected when
// it would breach the triples or doubles cap, in which case the input is
// returned unchanged alongside the cap error.
func Toggle(s Selections, matchID string, outcome pool.Outcome) (Selections, error) {
	if _, ok := pool.AllOutcomes[outcome]; !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownOutcome, outcome)
	}

	next := s.Clone()
	if next == nil {
		next = make(Selections, 1)
	}

	if next.contains(matchID, outcome) {
		kept := make([]pool.Outcome, 0, len(next[matchID])-1)
		for _, existing := range next[matchID] {
			if existing != outcome {
				kept = append(kept, existing)
			}
		}
		if len(kept) == 0 {
			delete(next, matchID)
		} else {
			next[matchID] = kept
		}
		return next, nil
	}

	next[matchID] = append(next[matchID], outcome)

	doubles, triples := countMultiples(next)
	if triples > MaxTriples {
		return s, fmt.Errorf("%w: max=%d", ErrTripleCapExceeded, MaxTriples)
	}
	if doubles > MaxDoubles {
		return s, fmt.Errorf("%w: max=%d", ErrDoubleCapExceeded, MaxDoubles)
	}

	return next, nil
}

// Quote is the priced shape of a selection set.
type Quote struct {
	Doubles      int
	Triples      int
	Combinations int
	Stake        int64
}

// Price computes the quote for a possibly partial selection set. A match
// with no picks contributes factor 1 so organizers see a running total
// while the slate is being filled in.
func Price(s Selections) Quote {
	quote := Quote{Combinations: 1}
	for _, outcomes := range s {
		switch len(outcomes) {
		case 2:
			quote.Doubles++
			quote.Combinations *= 2
		case 3:
			quote.Triples++
			quote.Combinations *= 3
		}
	}
	quote.Stake = int64(BasePrice * quote.Combinations)
	return quote
}

// IsComplete reports whether every fixture of the pool has at least one
// outcome selected.
func IsComplete(p pool.Pool, s Selections) bool {
	for _, m := range p.Fixtures {
		if len(s[m.ID]) == 0 {
			return false
		}
	}
	return len(p.Fixtures) > 0
}

// ValidateOutcomes checks one match's outcome set: at most three picks,
// every outcome known, none repeated.
func ValidateOutcomes(matchID string, outcomes []pool.Outcome) error {
	if len(outcomes) > 3 {
		return fmt.Errorf("%w: %s", ErrSelectionOverflow, matchID)
	}

	seen := make(map[pool.Outcome]struct{}, len(outcomes))
	for _, outcome := range outcomes {
		if _, ok := pool.AllOutcomes[outcome]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOutcome, outcome)
		}
		if _, dup := seen[outcome]; dup {
			return fmt.Errorf("%w: %s repeated for %s", ErrUnknownOutcome, outcome, matchID)
		}
		seen[outcome] = struct{}{}
	}

	return nil
}

// Validate checks a selection set against a pool for submission: every
// fixture selected, no selections outside the slate, per-match sizes within
// 1..3, and double/triple caps honored.
func Validate(p pool.Pool, s Selections) error {
	for matchID, outcomes := range s {
		if !p.HasFixture(matchID) {
			return fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
		}
		if err := ValidateOutcomes(matchID, outcomes); err != nil {
			return err
		}
	}

	for _, m := range p.Fixtures {
		if len(s[m.ID]) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingSelection, m.ID)
		}
	}

	doubles, triples := countMultiples(s)
	if triples > MaxTriples {
		return fmt.Errorf("%w: max=%d", ErrTripleCapExceeded, MaxTriples)
	}
	if doubles > MaxDoubles {
		return fmt.Errorf("%w: max=%d", ErrDoubleCapExceeded, MaxDoubles)
	}

	return nil
}

func countMultiples(s Selections) (doubles, triples int) {
	for _, outcomes := range s {
		switch len(outcomes) {
		case 2:
			doubles++
		case 3:
			triples++
		}
	}
	return doubles, triples
}
