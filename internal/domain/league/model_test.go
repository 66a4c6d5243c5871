package league

import (
	"testing"
	"unicode/utf8"
)

func TestShortNameFor(t *testing.T) {
	t.Parallel()

	if got := ShortNameFor("  Premier League  "); got != "PREMIER LEAG" {
		t.Fatalf("short name = %q, want %q", got, "PREMIER LEAG")
	}
	if got := ShortNameFor("Liga MX"); got != "LIGA MX" {
		t.Fatalf("short name = %q, want %q", got, "LIGA MX")
	}
}

func TestShortNameFor_CountsRunes(t *testing.T) {
	t.Parallel()

	got := ShortNameFor("División Profesional")
	if got != "DIVISIÓN PRO" {
		t.Fatalf("short name = %q, want %q", got, "DIVISIÓN PRO")
	}
	if !utf8.ValidString(got) {
		t.Fatalf("short name %q is not valid utf-8", got)
	}
}

func TestLeagueValidate(t *testing.T) {
	t.Parallel()

	valid := League{ID: 262, Name: "Liga MX", ShortName: "LIGA MX"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := (League{Name: "Liga MX"}).Validate(); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := (League{ID: 262, Name: "  "}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
}
