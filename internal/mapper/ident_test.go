package mapper

import (
	"testing"

	"github.com/synchrotron/c4c4/internal/model"
)

func TestFallbackCandidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"Oracle e-Business Suite", "oebs"}, // hyphen splits words
		{"Shared Services", "ss"},
		{"Financial Approval Forms Service Hub", "fafs"}, // initials capped at 4
		{"Workday", "work"},
		{"FES", "fes"}, // short single word kept whole
		{"ab", "ab"},
		{"...", "tmp"}, // nothing usable
		{"", "tmp"},
		{"4People", "x4peo"}, // leading digit gets a letter prefix
	}
	for _, tc := range cases {
		if got := fallbackCandidate(tc.name); got != tc.want {
			t.Errorf("fallbackCandidate(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestShortCodeCandidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"BSW", "bsw"},
		{"  BSW  ", "bsw"},
		{"B.S-W", "bsw"}, // punctuation dropped
		{"", ""},
		{"   ", ""},
		{"!!", ""}, // unusable short code falls back
		{"4PO", "x4po"},
	}
	for _, tc := range cases {
		if got := shortCodeCandidate(tc.in); got != tc.want {
			t.Errorf("shortCodeCandidate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRelationshipBase(t *testing.T) {
	t.Parallel()

	if got := RelationshipBase("sharedservicesteam", "bsw"); got != "sharedservicesteamToBsw" {
		t.Fatalf("RelationshipBase = %q", got)
	}
}

func TestRun_AllocateUsesShortCode(t *testing.T) {
	t.Parallel()

	run := NewRun()
	id := run.Allocate(model.KindApplication, "app-1", "Baseware", "BSW")
	if id != "bsw" {
		t.Fatalf("Allocate = %q, want bsw", id)
	}
	if len(run.MissingShortCodes) != 0 {
		t.Fatalf("short-coded entity logged as missing: %+v", run.MissingShortCodes)
	}
}

func TestRun_AllocateFallbackLogged(t *testing.T) {
	t.Parallel()

	run := NewRun()
	id := run.Allocate(model.KindTeam, "team-1", "Oracle e-Business Suite", "")
	if id != "oebs" {
		t.Fatalf("Allocate = %q, want oebs", id)
	}
	if len(run.MissingShortCodes) != 1 {
		t.Fatalf("missing-short-code log has %d entries, want 1", len(run.MissingShortCodes))
	}
	m := run.MissingShortCodes[0]
	if m.Synthesized != "oebs" || m.SourceID != "team-1" || m.Kind != model.KindTeam {
		t.Fatalf("unexpected log entry: %+v", m)
	}
}

func TestRun_AllocateStable(t *testing.T) {
	t.Parallel()

	run := NewRun()
	first := run.Allocate(model.KindApplication, "app-1", "Baseware", "BSW")
	second := run.Allocate(model.KindApplication, "app-1", "Baseware", "BSW")
	if first != second {
		t.Fatalf("re-allocation for same source id: %q then %q", first, second)
	}
	if len(run.DuplicateIdentifiers) != 0 {
		t.Fatalf("stable re-allocation logged a collision: %+v", run.DuplicateIdentifiers)
	}
}

func TestRun_CollisionSuffixed(t *testing.T) {
	t.Parallel()

	run := NewRun()
	first := run.Allocate(model.KindApplication, "app-1", "Alpha Beta Corp", "abc")
	second := run.Allocate(model.KindApplication, "app-2", "Advanced Billing Core", "abc")
	if first != "abc" {
		t.Fatalf("first = %q, want abc", first)
	}
	if second != "abcx" {
		t.Fatalf("second = %q, want abcx", second)
	}
	if len(run.DuplicateIdentifiers) != 1 {
		t.Fatalf("collision log has %d entries, want 1", len(run.DuplicateIdentifiers))
	}
	d := run.DuplicateIdentifiers[0]
	if d.Original != "abc" || d.Final != "abcx" || d.Name != "Advanced Billing Core" {
		t.Fatalf("unexpected collision entry: %+v", d)
	}

	third := run.Unique("abc", model.KindIntegration, "Third")
	if third != "abcxx" {
		t.Fatalf("third = %q, want abcxx", third)
	}
}

func TestRun_RecordDetectsDuplicateTriple(t *testing.T) {
	t.Parallel()

	run := NewRun()
	if !run.Record("flow", "a", "b", "first label") {
		t.Fatalf("first Record returned false")
	}
	if run.Record("flow", "a", "b", "second label") {
		t.Fatalf("duplicate triple not detected")
	}
	// Different endpoints under the same base are distinct.
	if !run.Record("flow", "a", "c", "other") {
		t.Fatalf("distinct destination treated as duplicate")
	}

	if len(run.DuplicateRelationships) != 1 {
		t.Fatalf("duplicate log has %d entries, want 1", len(run.DuplicateRelationships))
	}
	d := run.DuplicateRelationships[0]
	if d.Label != "second label" || d.FirstLabel != "first label" {
		t.Fatalf("diagnostic does not name both labels: %+v", d)
	}
}
