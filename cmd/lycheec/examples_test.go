package main

import (
	"testing"

	"github.com/lychee-tools/lychee/internal/analyzer"
	"github.com/lychee-tools/lychee/internal/resolver"
	"github.com/lychee-tools/lychee/internal/session"
)

// expectedOutcome records whether one seed scenario (spec.md §8) is
// supposed to survive analysis.
var expectedOutcome = map[string]bool{
	"examples::arithmetic":     true,
	"examples::generic_id":     true,
	"examples::generic_struct": true,
	"examples::overload":       true,
	"examples::break_mismatch": false,
	"examples::decl_mismatch":  false,
}

func TestExampleProgramsMatchExpectedOutcome(t *testing.T) {
	for name, build := range examplePrograms {
		wantOK, known := expectedOutcome[name]
		if !known {
			t.Fatalf("example %q has no recorded expected outcome", name)
		}
		prog := build()
		resolved, err := resolver.Build(prog)
		if err != nil {
			if wantOK {
				t.Errorf("%s: resolver.Build failed unexpectedly: %v", name, err)
			}
			continue
		}
		_, err = analyzer.AnalyzeProgram(prog, resolved, session.New())
		gotOK := err == nil
		if gotOK != wantOK {
			t.Errorf("%s: expected success=%v, got success=%v (err=%v)", name, wantOK, gotOK, err)
		}
	}
}

func TestLoadProgramRejectsUnknownEntry(t *testing.T) {
	if _, err := loadProgram("examples::nonexistent"); err == nil {
		t.Fatal("expected an unknown entry name to be rejected")
	}
}

func TestRunSucceedsOnDefaultExample(t *testing.T) {
	if code := run("does-not-exist.yaml", false); code != 0 {
		t.Fatalf("expected the default example to analyze cleanly, got exit code %d", code)
	}
}
