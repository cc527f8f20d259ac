package binding

import (
	"testing"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chord"
)

func testAction(t *testing.T, key string, mods ...string) *action.Action {
	t.Helper()
	a, err := action.New(action.Spec{Key: key, Mods: mods, Handler: func() {}})
	if err != nil {
		t.Fatalf("action.New: %v", err)
	}
	return a
}

func TestAddLookupOrderIndependent(t *testing.T) {
	tbl := NewTable()
	a := testAction(t, "e", "shift", "cmd")
	tbl.Add([]string{"shift", "cmd"}, "e", a)

	got, ok := tbl.Lookup([]string{"cmd", "shift"}, "e")
	if !ok {
		t.Fatal("lookup with permuted modifiers missed")
	}
	if got != a {
		t.Error("lookup returned a different action")
	}
}

func TestLookupIsTotal(t *testing.T) {
	tbl := NewTable()
	if _, ok := tbl.Lookup([]string{"ctrl"}, "z"); ok {
		t.Error("unbound chord reported as bound")
	}
	if tbl.Has(nil, "q") {
		t.Error("Has on empty table")
	}
}

func TestAddEmptyKeyIsNoOp(t *testing.T) {
	tbl := NewTable()
	tbl.Add(nil, "", testAction(t, "x"))
	tbl.Add(nil, "  ", testAction(t, "x"))
	if tbl.Count() != 0 {
		t.Errorf("Count() = %d, want 0", tbl.Count())
	}
}

func TestCollisionLastWriteWins(t *testing.T) {
	tbl := NewTable()
	first := testAction(t, "e", "ctrl")
	second := testAction(t, "e", "ctrl")
	tbl.Add([]string{"ctrl"}, "e", first)
	tbl.Add([]string{"ctrl"}, "e", second)

	if tbl.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", tbl.Count())
	}
	got, _ := tbl.Lookup([]string{"ctrl"}, "e")
	if got != second {
		t.Error("collision did not resolve last-write-wins")
	}
}

func TestFromMatrixSkipsInactive(t *testing.T) {
	mk := func(spec action.Spec) *action.Action {
		a, err := action.New(spec)
		if err != nil {
			t.Fatalf("action.New: %v", err)
		}
		return a
	}

	m := action.Matrix{
		{
			mk(action.Spec{Key: "a", Handler: func() {}}),
			mk(action.Spec{Description: "spacer"}),
			mk(action.Spec{Key: "e", Empty: true}),
			mk(action.Spec{Key: "d", Description: "display only"}),
		},
	}

	tbl := FromMatrix(m)
	if tbl.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (only the active cell binds)", tbl.Count())
	}
	if !tbl.Has(nil, "a") {
		t.Error("active cell not bound")
	}
}

func TestLookupChord(t *testing.T) {
	tbl := NewTable()
	a := testAction(t, "space", "meta")
	tbl.Add([]string{"meta"}, "space", a)

	c, err := chord.Parse("cmd+space")
	if err != nil {
		t.Fatalf("chord.Parse: %v", err)
	}
	if got, ok := tbl.LookupChord(c); !ok || got != a {
		t.Error("LookupChord failed for parsed spec")
	}
}

func TestDescribeValidChords(t *testing.T) {
	tbl := NewTable()
	tbl.Add([]string{"ctrl"}, "b", testAction(t, "b", "ctrl"))
	tbl.Add(nil, "a", testAction(t, "a"))

	want := "a, ctrl+b"
	if got := tbl.DescribeValidChords(); got != want {
		t.Errorf("DescribeValidChords() = %q, want %q", got, want)
	}
}
