package picks

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/turugol/quiniela/internal/domain/pool"
)

func ninePool() pool.Pool {
	p := pool.Pool{ID: "pool-1"}
	for i := 1; i <= pool.MaxMatches; i++ {
		p.Fixtures = append(p.Fixtures, pool.Match{
			ID:        fmt.Sprintf("m%d", i),
			KickoffAt: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
		})
	}
	return p
}

func TestToggle_RoundTrip(t *testing.T) {
	s := Selections{"m1": {pool.OutcomeHome}}

	once, err := Toggle(s, "m2", pool.OutcomeDraw)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	twice, err := Toggle(once, "m2", pool.OutcomeDraw)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	if _, exists := twice["m2"]; exists {
		t.Fatalf("expected m2 selection removed, got %v", twice["m2"])
	}
	if len(twice["m1"]) != 1 || twice["m1"][0] != pool.OutcomeHome {
		t.Fatalf("unrelated selection changed: %v", twice["m1"])
	}
	if len(s["m2"]) != 0 {
		t.Fatalf("input mutated: %v", s["m2"])
	}
}

func TestToggle_TripleCap(t *testing.T) {
	s := Selections{}
	var err error
	for _, matchID := range []string{"m1", "m2", "m3"} {
		for _, outcome := range []pool.Outcome{pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway} {
			s, err = Toggle(s, matchID, outcome)
			if err != nil {
				t.Fatalf("toggle %s %s: %v", matchID, outcome, err)
			}
		}
	}

	s, err = Toggle(s, "m4", pool.OutcomeHome)
	if err != nil {
		t.Fatalf("first pick on m4: %v", err)
	}
	s, err = Toggle(s, "m4", pool.OutcomeDraw)
	if err != nil {
		t.Fatalf("second pick on m4: %v", err)
	}

	got, err := Toggle(s, "m4", pool.OutcomeAway)
	if !errors.Is(err, ErrTripleCapExceeded) {
		t.Fatalf("expected ErrTripleCapExceeded, got %v", err)
	}
	if len(got["m4"]) != 2 {
		t.Fatalf("rejected toggle mutated state: %v", got["m4"])
	}
}

func TestToggle_DoubleCap(t *testing.T) {
	s := Selections{}
	var err error
	for i := 1; i <= 4; i++ {
		matchID := fmt.Sprintf("m%d", i)
		s, err = Toggle(s, matchID, pool.OutcomeHome)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		s, err = Toggle(s, matchID, pool.OutcomeDraw)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	s, err = Toggle(s, "m5", pool.OutcomeHome)
	if err != nil {
		t.Fatalf("single on m5: %v", err)
	}
	got, err := Toggle(s, "m5", pool.OutcomeAway)
	if !errors.Is(err, ErrDoubleCapExceeded) {
		t.Fatalf("expected ErrDoubleCapExceeded, got %v", err)
	}
	if len(got["m5"]) != 1 {
		t.Fatalf("rejected toggle mutated state: %v", got["m5"])
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name             string
		selections       Selections
		wantDoubles      int
		wantTriples      int
		wantCombinations int
		wantStake        int64
	}{
		{
			name:             "empty",
			selections:       Selections{},
			wantCombinations: 1,
			wantStake:        100,
		},
		{
			name: "singles only",
			selections: Selections{
				"m1": {pool.OutcomeHome},
				"m2": {pool.OutcomeAway},
			},
			wantCombinations: 1,
			wantStake:        100,
		},
		{
			name: "two triples one double",
			selections: Selections{
				"m1": {pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway},
				"m2": {pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway},
				"m3": {pool.OutcomeHome, pool.OutcomeDraw},
				"m4": {pool.OutcomeHome},
			},
			wantDoubles:      1,
			wantTriples:      2,
			wantCombinations: 18,
			wantStake:        1800,
		},
		{
			name: "max caps",
			selections: Selections{
				"m1": {pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway},
				"m2": {pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway},
				"m3": {pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway},
				"m4": {pool.OutcomeHome, pool.OutcomeDraw},
				"m5": {pool.OutcomeHome, pool.OutcomeDraw},
				"m6": {pool.OutcomeHome, pool.OutcomeDraw},
				"m7": {pool.OutcomeHome, pool.OutcomeDraw},
				"m8": {pool.OutcomeHome},
				"m9": {pool.OutcomeHome},
			},
			wantDoubles:      4,
			wantTriples:      3,
			wantCombinations: 432,
			wantStake:        43200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.selections)
			if got.Doubles != tt.wantDoubles {
				t.Fatalf("doubles: got=%d want=%d", got.Doubles, tt.wantDoubles)
			}
			if got.Triples != tt.wantTriples {
				t.Fatalf("triples: got=%d want=%d", got.Triples, tt.wantTriples)
			}
			if got.Combinations != tt.wantCombinations {
				t.Fatalf("combinations: got=%d want=%d", got.Combinations, tt.wantCombinations)
			}
			if got.Stake != tt.wantStake {
				t.Fatalf("stake: got=%d want=%d", got.Stake, tt.wantStake)
			}
		})
	}
}

func TestIsComplete_Boundary(t *testing.T) {
	p := ninePool()
	s := Selections{}
	var err error

	for i, m := range p.Fixtures {
		if IsComplete(p, s) {
			t.Fatalf("complete with %d of %d fixtures picked", i, len(p.Fixtures))
		}
		s, err = Toggle(s, m.ID, pool.OutcomeHome)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	if !IsComplete(p, s) {
		t.Fatal("expected complete once every fixture has a pick")
	}
}

func TestValidate(t *testing.T) {
	p := ninePool()

	full := Selections{}
	var err error
	for _, m := range p.Fixtures {
		full, err = Toggle(full, m.ID, pool.OutcomeHome)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	if err := Validate(p, full); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}

	missing := full.Clone()
	delete(missing, "m5")
	if err := Validate(p, missing); !errors.Is(err, ErrMissingSelection) {
		t.Fatalf("expected ErrMissingSelection, got %v", err)
	}

	extra := full.Clone()
	extra["m99"] = []pool.Outcome{pool.OutcomeHome}
	if err := Validate(p, extra); !errors.Is(err, ErrUnknownMatch) {
		t.Fatalf("expected ErrUnknownMatch, got %v", err)
	}

	repeated := full.Clone()
	repeated["m5"] = []pool.Outcome{pool.OutcomeHome, pool.OutcomeHome}
	if err := Validate(p, repeated); !errors.Is(err, ErrUnknownOutcome) {
		t.Fatalf("expected ErrUnknownOutcome for repeated pick, got %v", err)
	}
}

func TestValidateOutcomes(t *testing.T) {
	if err := ValidateOutcomes("m1", []pool.Outcome{pool.OutcomeHome, pool.OutcomeDraw}); err != nil {
		t.Fatalf("valid outcomes rejected: %v", err)
	}

	if err := ValidateOutcomes("m1", []pool.Outcome{pool.OutcomeHome, pool.OutcomeHome}); !errors.Is(err, ErrUnknownOutcome) {
		t.Fatalf("expected ErrUnknownOutcome for duplicate, got %v", err)
	}

	four := []pool.Outcome{pool.OutcomeHome, pool.OutcomeDraw, pool.OutcomeAway, pool.OutcomeHome}
	if err := ValidateOutcomes("m1", four); !errors.Is(err, ErrSelectionOverflow) {
		t.Fatalf("expected ErrSelectionOverflow, got %v", err)
	}

	if err := ValidateOutcomes("m1", []pool.Outcome{pool.Outcome("X")}); !errors.Is(err, ErrUnknownOutcome) {
		t.Fatalf("expected ErrUnknownOutcome for unknown value, got %v", err)
	}
}
