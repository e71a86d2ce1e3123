package registry

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"strmatch-core/profile"
	"strmatch-core/str"
)

func build(keys ...string) *Registry {
	r := New()
	for _, k := range keys {
		r.Insert(k, profile.New())
	}
	return r
}

// checkBST fails when any node violates the ordering invariant and returns
// the in-order keys.
func checkBST(t *testing.T, r *Registry) []string {
	t.Helper()
	var keys []string
	var walk func(n *Node, lo, hi *string)
	walk = func(n *Node, lo, hi *string) {
		if n == nil {
			return
		}
		if lo != nil && n.Key() <= *lo {
			t.Fatalf("key %q not > lower bound %q", n.Key(), *lo)
		}
		if hi != nil && n.Key() >= *hi {
			t.Fatalf("key %q not < upper bound %q", n.Key(), *hi)
		}
		k := n.Key()
		walk(n.Left(), lo, &k)
		keys = append(keys, k)
		walk(n.Right(), &k, hi)
	}
	walk(r.Root(), nil, nil)
	return keys
}

func TestInsertBuildsBST(t *testing.T) {
	r := build("M", "B", "Q", "A", "D")
	if r.Root().Key() != "M" || r.Root().Left().Key() != "B" || r.Root().Right().Key() != "Q" {
		t.Fatalf("unexpected shape")
	}
	if got := checkBST(t, r); !reflect.DeepEqual(got, []string{"A", "B", "D", "M", "Q"}) {
		t.Fatalf("in-order keys: %v", got)
	}
	if r.Height() != 3 {
		t.Fatalf("want height 3, got %d", r.Height())
	}
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	r := New()
	first := profile.New(str.Record{Marker: "AGAT", Occurrences: 1})
	second := profile.New(str.Record{Marker: "TCTA", Occurrences: 7})
	if !r.Insert("Doe, Jane", first) {
		t.Fatalf("first insert should add")
	}
	if r.Insert("Doe, Jane", second) {
		t.Fatalf("duplicate insert should report false")
	}
	got, ok := r.Lookup("Doe, Jane")
	if !ok || got != first {
		t.Fatalf("want original profile kept, got %+v", got)
	}
	if r.Len() != 1 {
		t.Fatalf("want 1 profile, got %d", r.Len())
	}
}

func TestLookupMissing(t *testing.T) {
	r := build("M", "B")
	if _, ok := r.Lookup("Z"); ok {
		t.Fatalf("Z should be missing")
	}
	if _, ok := New().Lookup("A"); ok {
		t.Fatalf("empty registry lookup should miss")
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := New()
	if r.CountByInterest(true) != 0 || r.CountByInterest(false) != 0 {
		t.Fatalf("empty counts should be zero")
	}
	if n := r.FlagMatches(); n != 0 {
		t.Fatalf("want 0 flagged, got %d", n)
	}
	keys := r.UnflaggedKeys()
	if keys == nil || len(keys) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", keys)
	}
	if r.Remove("nobody") {
		t.Fatalf("remove on empty should be a no-op")
	}
	if got := r.CleanupUnflagged(); len(got) != 0 {
		t.Fatalf("cleanup on empty removed %v", got)
	}
	if r.Height() != 0 {
		t.Fatalf("empty height should be 0")
	}
}

func TestUnflaggedKeysLevelOrder(t *testing.T) {
	r := build("M", "B", "Q", "A", "D")
	want := []string{"M", "B", "Q", "A", "D"}
	if got := r.UnflaggedKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	r2 := build("D", "Q", "A", "M", "B")
	want2 := []string{"D", "A", "Q", "B", "M"}
	if got := r2.UnflaggedKeys(); !reflect.DeepEqual(got, want2) {
		t.Fatalf("want %v, got %v", want2, got)
	}
}

func TestCountByInterest(t *testing.T) {
	r := build("M", "B", "Q", "A", "D")
	p, _ := r.Lookup("B")
	p.OfInterest = true
	p, _ = r.Lookup("Q")
	p.OfInterest = true
	if r.CountByInterest(true) != 2 || r.CountByInterest(false) != 3 {
		t.Fatalf("counts: true=%d false=%d", r.CountByInterest(true), r.CountByInterest(false))
	}
	if got := r.UnflaggedKeys(); !reflect.DeepEqual(got, []string{"M", "A", "D"}) {
		t.Fatalf("unflagged: %v", got)
	}
}

func TestCountSkipsNilProfiles(t *testing.T) {
	r := New()
	r.SetRoot(NewNode("M", nil, NewNode("B", profile.New(), nil, nil), nil))
	if r.CountByInterest(false) != 1 || r.CountByInterest(true) != 0 {
		t.Fatalf("nil profile must not be counted")
	}
	if got := r.UnflaggedKeys(); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("nil profile must not be listed: %v", got)
	}
}

func TestRemoveLeafAndSingleChild(t *testing.T) {
	r := build("M", "B", "Q", "A", "D", "Z")
	if !r.Remove("A") {
		t.Fatalf("remove leaf")
	}
	if r.Root().Left().Left() != nil {
		t.Fatalf("leaf A not unlinked")
	}
	// Q has only the right child Z.
	if !r.Remove("Q") || r.Root().Right().Key() != "Z" {
		t.Fatalf("single child not spliced")
	}
	if got := checkBST(t, r); !reflect.DeepEqual(got, []string{"B", "D", "M", "Z"}) {
		t.Fatalf("keys after removal: %v", got)
	}
}

func TestRemoveRoot(t *testing.T) {
	r := build("M", "B")
	r.Remove("M")
	if r.Root().Key() != "B" {
		t.Fatalf("root should be B, got %q", r.Root().Key())
	}
	r.Remove("B")
	if r.Root() != nil {
		t.Fatalf("tree should be empty")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	r := build("M", "B", "Q")
	if r.Remove("C") {
		t.Fatalf("C is not present")
	}
	if got := checkBST(t, r); len(got) != 3 {
		t.Fatalf("tree changed: %v", got)
	}
}

func TestRemoveTwoChildrenReusesNode(t *testing.T) {
	r := build("M", "B", "Q", "A", "D", "C")
	b := r.Root().Left()
	cProfile, _ := r.Lookup("C")

	if !r.Remove("B") {
		t.Fatalf("remove B")
	}
	if r.Root().Left() != b {
		t.Fatalf("node holding B should be reused, not relinked")
	}
	if b.Key() != "C" || b.Profile() != cProfile {
		t.Fatalf("successor not copied: key=%q", b.Key())
	}
	if b.Right().Key() != "D" || b.Right().Left() != nil {
		t.Fatalf("successor not unlinked")
	}
	if got := checkBST(t, r); !reflect.DeepEqual(got, []string{"A", "C", "D", "M", "Q"}) {
		t.Fatalf("keys: %v", got)
	}
}

func TestRemoveTwoChildrenImmediateSuccessor(t *testing.T) {
	// D's right child E has no left child, so E is the successor and is the
	// right child of the removed node.
	r := build("D", "B", "E", "F")
	r.Remove("D")
	if r.Root().Key() != "E" || r.Root().Right().Key() != "F" {
		t.Fatalf("unexpected shape after root removal")
	}
	checkBST(t, r)
}

func TestRandomOpsKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := New()
	present := map[string]bool{}
	for i := 0; i < 2000; i++ {
		k := fmt.Sprintf("k%03d", rng.Intn(200))
		if rng.Intn(3) == 0 {
			if got := r.Remove(k); got != present[k] {
				t.Fatalf("remove %s: want %v got %v", k, present[k], got)
			}
			delete(present, k)
		} else {
			if got := r.Insert(k, profile.New()); got == present[k] {
				t.Fatalf("insert %s: present=%v added=%v", k, present[k], got)
			}
			present[k] = true
		}
		if i%50 == 0 {
			checkBST(t, r)
		}
	}
	var want []string
	for k := range present {
		want = append(want, k)
	}
	sort.Strings(want)
	if got := checkBST(t, r); !reflect.DeepEqual(got, want) {
		t.Fatalf("final keys mismatch")
	}
	if !reflect.DeepEqual(r.Keys(), want) {
		t.Fatalf("Keys() mismatch")
	}
	if r.CountByInterest(true)+r.CountByInterest(false) != len(want) {
		t.Fatalf("count mismatch")
	}
}

func TestFlagMatches(t *testing.T) {
	r := New()
	r.SetFirstUnknown("AGATAGATAGAT")
	r.SetSecondUnknown("TCTATCTA")
	r.Insert("Hit, Two", profile.New(
		str.Record{Marker: "AGAT", Occurrences: 3},
		str.Record{Marker: "TCTA", Occurrences: 2},
		str.Record{Marker: "GGGG", Occurrences: 4},
	))
	r.Insert("Miss, One", profile.New(
		str.Record{Marker: "AGAT", Occurrences: 3},
		str.Record{Marker: "TCTA", Occurrences: 5},
		str.Record{Marker: "GGGG", Occurrences: 4},
	))
	r.Insert("Empty, Profile", profile.New())

	if n := r.FlagMatches(); n != 2 {
		t.Fatalf("want 2 newly flagged, got %d", n)
	}
	if got := r.UnflaggedKeys(); !reflect.DeepEqual(got, []string{"Miss, One"}) {
		t.Fatalf("unflagged: %v", got)
	}
	if n := r.FlagMatches(); n != 0 || r.CountByInterest(true) != 2 {
		t.Fatalf("second pass should be idempotent, flagged %d", n)
	}
}

func TestFlagMatchesNeverClears(t *testing.T) {
	r := New()
	p := profile.New(str.Record{Marker: "AGAT", Occurrences: 9})
	p.OfInterest = true
	r.Insert("Kept, Flag", p)
	r.FlagMatches()
	if !p.OfInterest {
		t.Fatalf("flag was cleared")
	}
}

func TestFlagMatchesUsesCounter(t *testing.T) {
	r := build("M", "B")
	seen := 0
	r.SetCounter(str.CounterFunc(func(seq, marker string) int { seen++; return 0 }))
	p, _ := r.Lookup("M")
	p.STRs = []str.Record{{Marker: "A", Occurrences: 0}}
	r.FlagMatches()
	if seen != 2 {
		t.Fatalf("want 2 counter calls, got %d", seen)
	}
}

func TestCleanupUnflaggedUsesSnapshot(t *testing.T) {
	r := build("M", "B", "Q", "A", "D", "C", "P", "Z")
	for _, k := range []string{"D", "Q"} {
		p, _ := r.Lookup(k)
		p.OfInterest = true
	}
	removed := r.CleanupUnflagged()
	if want := []string{"M", "B", "A", "P", "Z", "C"}; !reflect.DeepEqual(removed, want) {
		t.Fatalf("removed: want %v, got %v", want, removed)
	}
	if got := checkBST(t, r); !reflect.DeepEqual(got, []string{"D", "Q"}) {
		t.Fatalf("remaining keys: %v", got)
	}
	if r.CountByInterest(false) != 0 {
		t.Fatalf("unflagged profiles left behind")
	}
}

// Removing B copies its successor C into the root. The remaining removals
// must still follow the original level order (A before C), which leaves E at
// the root. Re-reading the unflagged set after each removal would take C
// first and leave D at the root instead.
func TestCleanupUnflaggedOrderFixesShape(t *testing.T) {
	r := build("B", "A", "E", "C", "D")
	for _, k := range []string{"E", "D"} {
		p, _ := r.Lookup(k)
		p.OfInterest = true
	}
	removed := r.CleanupUnflagged()
	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(removed, want) {
		t.Fatalf("removed: want %v, got %v", want, removed)
	}
	root := r.Root()
	if root == nil || root.Key() != "E" {
		t.Fatalf("want root E, got %v", root)
	}
	if root.Right() != nil {
		t.Fatalf("want no right child, got %q", root.Right().Key())
	}
	l := root.Left()
	if l == nil || l.Key() != "D" || l.Left() != nil || l.Right() != nil {
		t.Fatalf("want leaf D left of root, got %v", l)
	}
	for _, k := range []string{"D", "E"} {
		if p, ok := r.Lookup(k); !ok || !p.OfInterest {
			t.Fatalf("flagged profile %s lost", k)
		}
	}
}

func TestWalkStopsEarly(t *testing.T) {
	r := build("M", "B", "Q")
	var got []string
	r.Walk(func(k string, _ *profile.Profile) bool {
		got = append(got, k)
		return len(got) < 2
	})
	if !reflect.DeepEqual(got, []string{"M", "B"}) {
		t.Fatalf("walk: %v", got)
	}
}

func TestAccessors(t *testing.T) {
	r := New()
	r.SetFirstUnknown("AAA")
	r.SetSecondUnknown("CCC")
	if r.FirstUnknown() != "AAA" || r.SecondUnknown() != "CCC" {
		t.Fatalf("unknown accessors")
	}
	root := NewNode("X", profile.New(), nil, nil)
	r.SetRoot(root)
	if r.Root() != root {
		t.Fatalf("root accessor")
	}
}
