package sequence_test

import (
	"testing"

	"poolwatch/internal/platform/sequence"
)

func TestCommitRejectsOlderResponses(t *testing.T) {
	t.Parallel()
	tr := sequence.NewTracker()
	first := tr.Next("pool:1")
	second := tr.Next("pool:1")

	if !tr.Commit("pool:1", second) {
		t.Fatalf("newest request must commit")
	}
	if tr.Commit("pool:1", first) {
		t.Fatalf("older request resolved late must be stale")
	}
}

func TestTargetsAreIndependent(t *testing.T) {
	t.Parallel()
	tr := sequence.NewTracker()
	a := tr.Next("pool:1")
	b := tr.Next("pool:2")
	if !tr.Commit("pool:1", a) || !tr.Commit("pool:2", b) {
		t.Fatalf("distinct targets must not interfere")
	}
}

func TestRetireMakesEveryRequestStale(t *testing.T) {
	t.Parallel()
	tr := sequence.NewTracker()
	pending := tr.Next("pool:1")
	tr.Retire("pool:1")
	if tr.Commit("pool:1", pending) {
		t.Fatalf("request issued before retiring must be stale")
	}
	if tr.Commit("pool:1", tr.Next("pool:1")) {
		t.Fatalf("request issued after retiring must be stale")
	}
	if !tr.Commit("pool:2", tr.Next("pool:2")) {
		t.Fatalf("other targets must stay open")
	}
}
