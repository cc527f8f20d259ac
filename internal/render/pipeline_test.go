package render

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/icon"
	"github.com/dshills/gridkey/internal/theme"
)

// fakeSurface records operations for assertions.
type fakeSurface struct {
	mu        sync.Mutex
	width     int
	height    int
	elements  []Element
	inserted  []Element
	removed   []string
	shown     bool
	hidden    bool
	released  bool
	showFade  time.Duration
	hideFade  time.Duration
	replaceOp int
}

func (s *fakeSurface) SetSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = w, h
}

func (s *fakeSurface) ReplaceAll(elements []Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = elements
	s.replaceOp++
}

func (s *fakeSurface) Insert(el Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, el)
}

func (s *fakeSurface) RemoveByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, id)
}

func (s *fakeSurface) ShowFade(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = true
	s.showFade = d
}

func (s *fakeSurface) HideFade(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = true
	s.hideFade = d
}

func (s *fakeSurface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
}

func mk(t *testing.T, spec action.Spec) *action.Action {
	t.Helper()
	a, err := action.New(spec)
	if err != nil {
		t.Fatalf("action.New: %v", err)
	}
	return a
}

func fullMatrix(t *testing.T, rows, cols int) action.Matrix {
	t.Helper()
	m := make(action.Matrix, rows)
	keys := "abcdefghijklmnopqrstuvwxyz"
	k := 0
	for r := range m {
		m[r] = make([]*action.Action, cols)
		for c := range m[r] {
			m[r][c] = mk(t, action.Spec{
				Key:         string(keys[k]),
				Description: "cell " + string(keys[k]),
				Handler:     func() {},
			})
			k++
		}
	}
	m.EnsureIDs()
	return m
}

func TestDimensions(t *testing.T) {
	m := action.Matrix{
		{mk(t, action.Spec{Key: "a"}), mk(t, action.Spec{Key: "b"})},
		{mk(t, action.Spec{Key: "c"})},
	}
	rows, cols := Dimensions(m)
	if rows != 2 || cols != 2 {
		t.Errorf("Dimensions() = (%d, %d), want (2, 2)", rows, cols)
	}
}

func TestCanvasSize(t *testing.T) {
	m := fullMatrix(t, 2, 3)
	th := theme.Default()

	w, h := CanvasSize(m, th)
	wantW := 2*th.Padding + 3*th.CellWidth + 2*th.Spacing
	wantH := 2*th.Padding + 2*th.CellHeight + 1*th.Spacing
	if w != wantW || h != wantH {
		t.Errorf("CanvasSize() = (%d, %d), want (%d, %d)", w, h, wantW, wantH)
	}

	if w, h := CanvasSize(action.Matrix{}, th); w != 0 || h != 0 {
		t.Errorf("empty matrix CanvasSize = (%d, %d), want (0, 0)", w, h)
	}
}

func TestBuildElementsFullMatrix(t *testing.T) {
	m := fullMatrix(t, 2, 3)
	elements, index := BuildElements(m, theme.Default())

	// One frame plus five elements per cell: background, border,
	// icon, hotkey label, description label.
	want := 1 + 2*3*5
	if len(elements) != want {
		t.Fatalf("len(elements) = %d, want %d", len(elements), want)
	}

	frames := 0
	for _, el := range elements {
		if el.Kind == KindFrame {
			frames++
		}
	}
	if frames != 1 {
		t.Errorf("frame elements = %d, want exactly 1", frames)
	}

	for id, indices := range index {
		if len(indices) != 5 {
			t.Errorf("cell %s has %d elements, want 5", id, len(indices))
		}
	}
}

func TestBuildElementsSkipsFiller(t *testing.T) {
	m := action.Matrix{
		{
			mk(t, action.Spec{Key: "a", Description: "A", Handler: func() {}}),
			mk(t, action.Spec{}), // no key, no description
		},
	}
	m.EnsureIDs()

	elements, index := BuildElements(m, theme.Default())
	if len(elements) != 1+5 {
		t.Errorf("len(elements) = %d, want 6 (filler contributes zero)", len(elements))
	}
	if len(index["r1c2"]) != 0 {
		t.Errorf("filler cell has %d elements, want 0", len(index["r1c2"]))
	}
}

func TestBuildElementsEmptyCellDimmedNoGlyph(t *testing.T) {
	m := action.Matrix{
		{mk(t, action.Spec{Key: "s", Description: "S", Empty: true})},
	}
	m.EnsureIDs()

	elements, _ := BuildElements(m, theme.Default())
	var tile *Element
	for i := range elements {
		if elements[i].Kind == KindPlaceholder {
			tile = &elements[i]
		}
	}
	if tile == nil {
		t.Fatal("no placeholder tile for empty cell")
	}
	if tile.Glyph != 0 {
		t.Errorf("empty cell tile has glyph %q, want none", tile.Glyph)
	}
	if !tile.Dim {
		t.Error("empty cell tile not dimmed")
	}
}

func TestHotkeyLabelUsesDisplayForm(t *testing.T) {
	m := action.Matrix{
		{mk(t, action.Spec{Key: "e", Mods: []string{"shift", "cmd"}, Description: "E", Handler: func() {}})},
	}
	m.EnsureIDs()

	elements, _ := BuildElements(m, theme.Default())
	for _, el := range elements {
		if el.Kind == KindHotkeyLabel {
			if el.Text != "⌘⇧E" {
				t.Errorf("hotkey label = %q, want ⌘⇧E", el.Text)
			}
			return
		}
	}
	t.Fatal("no hotkey label element")
}

func TestPresentBatchesOnce(t *testing.T) {
	m := fullMatrix(t, 2, 2)
	surface := &fakeSurface{}
	p := New(m, theme.Default(), surface)

	p.Present()

	if surface.replaceOp != 1 {
		t.Errorf("ReplaceAll called %d times, want 1", surface.replaceOp)
	}
	if !surface.shown {
		t.Error("surface never shown")
	}
	if len(surface.inserted) != 0 {
		t.Errorf("%d incremental inserts during present, want 0", len(surface.inserted))
	}
	if surface.width == 0 || surface.height == 0 {
		t.Error("surface size not set before replace")
	}
}

func TestUpdateIconReplacesPlaceholderOnly(t *testing.T) {
	m := fullMatrix(t, 1, 2)
	surface := &fakeSurface{}
	p := New(m, theme.Default(), surface)
	p.Present()

	before := p.Elements()
	otherBefore := len(p.CellElements("r1c2"))

	asset := &icon.Asset{Glyph: 'A'}
	p.UpdateIcon("r1c1", asset)

	after := p.Elements()
	if len(after) != len(before) {
		t.Errorf("element count changed: %d -> %d", len(before), len(after))
	}
	if got := len(p.CellElements("r1c2")); got != otherBefore {
		t.Errorf("other cell's elements touched: %d -> %d", otherBefore, got)
	}

	var found bool
	for _, el := range after {
		if el.CellID == "r1c1" && el.Kind == KindIcon {
			found = true
			if el.Glyph != 'A' {
				t.Errorf("icon glyph = %q, want A", el.Glyph)
			}
		}
		if el.CellID == "r1c1" && el.Kind == KindPlaceholder {
			t.Error("placeholder still present after update")
		}
	}
	if !found {
		t.Error("resolved icon element missing")
	}

	if len(surface.removed) != 1 || len(surface.inserted) != 1 {
		t.Errorf("surface ops = %d removes, %d inserts; want 1 and 1",
			len(surface.removed), len(surface.inserted))
	}
}

func TestUpdateIconNoPlaceholderIsNoOp(t *testing.T) {
	m := fullMatrix(t, 1, 1)
	surface := &fakeSurface{}
	p := New(m, theme.Default(), surface)
	p.Present()

	p.UpdateIcon("r1c1", &icon.Asset{Glyph: 'A'})
	// Second update: placeholder already replaced.
	p.UpdateIcon("r1c1", &icon.Asset{Glyph: 'B'})

	if len(surface.inserted) != 1 {
		t.Errorf("inserts = %d, want 1 (second update is a no-op)", len(surface.inserted))
	}

	// Unknown cell is also a no-op.
	before := len(p.Elements())
	p.UpdateIcon("nope", &icon.Asset{Glyph: 'C'})
	if len(p.Elements()) != before {
		t.Error("unknown cell update changed element count")
	}
}

func TestUpdateIconNilAssetIsNoOp(t *testing.T) {
	m := fullMatrix(t, 1, 1)
	surface := &fakeSurface{}
	p := New(m, theme.Default(), surface)
	p.Present()

	p.UpdateIcon("r1c1", nil)
	for _, el := range p.Elements() {
		if el.CellID == "r1c1" && el.Kind == KindIcon {
			t.Error("nil asset replaced the placeholder")
		}
	}
}

func TestDismissAndRelease(t *testing.T) {
	m := fullMatrix(t, 1, 1)
	surface := &fakeSurface{}
	p := New(m, theme.Default(), surface)
	p.Present()
	p.Dismiss()

	if !surface.hidden {
		t.Error("surface not hidden on dismiss")
	}
	if surface.released {
		t.Error("surface released before Release()")
	}

	p.Release()
	if !surface.released {
		t.Error("surface not released")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten chars aren't", 5, "exac…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
