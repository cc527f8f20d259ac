package action

import "testing"

func TestFactoryPrecedence(t *testing.T) {
	sub := &Matrix{{mustNew(t, Spec{Key: "a", Handler: func() {}})}}

	tests := []struct {
		name string
		spec Spec
		want Kind
	}{
		{"empty wins over everything", Spec{Key: "e", App: "firefox", Empty: true}, KindEmpty},
		{"no key means spacer", Spec{Description: "gap", App: "firefox"}, KindSpacer},
		{"app over file", Spec{Key: "f", App: "firefox", File: "/tmp/x"}, KindApp},
		{"file over submenu", Spec{Key: "f", File: "/tmp/x", Submenu: sub}, KindFile},
		{"submenu over custom", Spec{Key: "s", Submenu: sub, Handler: func() {}}, KindSubmenu},
		{"custom", Spec{Key: "c", Handler: func() {}}, KindCustom},
		{"display only is custom without handler", Spec{Key: "d", Description: "hint"}, KindCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.spec)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if a.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", a.Kind, tt.want)
			}
		})
	}
}

func TestEmptySubmenuRejected(t *testing.T) {
	if _, err := New(Spec{Key: "s", Submenu: &Matrix{}}); err == nil {
		t.Error("expected error for empty submenu matrix")
	}
}

func TestActive(t *testing.T) {
	sub := &Matrix{{mustNew(t, Spec{Key: "a", Handler: func() {}})}}

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"handler", Spec{Key: "q", Handler: func() {}}, true},
		{"submenu", Spec{Key: "s", Submenu: sub}, true},
		{"display only", Spec{Key: "d", Description: "hint"}, false},
		{"spacer", Spec{}, false},
		{"empty", Spec{Key: "e", Empty: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustNew(t, tt.spec)
			if got := a.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultHandlerIsNoOp(t *testing.T) {
	a := mustNew(t, Spec{Key: "d"})
	// Must not panic.
	a.Handler()()
}

func TestFileDefaults(t *testing.T) {
	a := mustNew(t, Spec{Key: "f", File: "/home/me/notes.txt"})
	if a.Description != "notes.txt" {
		t.Errorf("Description = %q, want basename", a.Description)
	}
	if a.IconSource.Path != "/home/me/notes.txt" {
		t.Errorf("IconSource.Path = %q", a.IconSource.Path)
	}
}

func TestEnsureIDs(t *testing.T) {
	sub := &Matrix{{mustNew(t, Spec{Key: "x", Handler: func() {}})}}
	m := Matrix{
		{mustNew(t, Spec{Key: "a", Handler: func() {}}), mustNew(t, Spec{Key: "b", Submenu: sub})},
		{mustNew(t, Spec{Key: "c", Handler: func() {}, ID: "custom"})},
	}
	m.EnsureIDs()

	if got := m[0][0].ID; got != "r1c1" {
		t.Errorf("ID = %q, want r1c1", got)
	}
	if got := m[0][1].ID; got != "r1c2" {
		t.Errorf("ID = %q, want r1c2", got)
	}
	if got := m[1][0].ID; got != "custom" {
		t.Errorf("supplied ID overwritten: %q", got)
	}
	if got := (*sub)[0][0].ID; got != "r1c2/r1c1" {
		t.Errorf("nested ID = %q, want r1c2/r1c1", got)
	}
}

func TestDimensions(t *testing.T) {
	m := Matrix{
		{mustNew(t, Spec{Key: "a"}), mustNew(t, Spec{Key: "b"}), mustNew(t, Spec{Key: "c"})},
		{mustNew(t, Spec{Key: "d"})},
	}
	rows, cols := m.Dimensions()
	if rows != 2 || cols != 3 {
		t.Errorf("Dimensions() = (%d, %d), want (2, 3)", rows, cols)
	}
}

func TestFlattenActive(t *testing.T) {
	sub := &Matrix{{mustNew(t, Spec{Key: "x", Handler: func() {}, Description: "Inner"})}}
	m := Matrix{
		{
			mustNew(t, Spec{Key: "a", Handler: func() {}, Description: "Alpha"}),
			mustNew(t, Spec{Key: "s", Submenu: sub, Description: "Tools"}),
			mustNew(t, Spec{Description: "spacer"}),
			mustNew(t, Spec{Key: "d", Description: "display only"}),
		},
	}
	m.EnsureIDs()

	entries := m.FlattenActive()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Action.Description != "Alpha" || entries[0].Path != "" {
		t.Errorf("entry 0 = %q path %q", entries[0].Action.Description, entries[0].Path)
	}
	if entries[1].Action.Description != "Inner" || entries[1].Path != "Tools" {
		t.Errorf("entry 1 = %q path %q, want Inner under Tools", entries[1].Action.Description, entries[1].Path)
	}
}

func mustNew(t *testing.T, spec Spec) *Action {
	t.Helper()
	a, err := New(spec)
	if err != nil {
		t.Fatalf("New(%+v): %v", spec, err)
	}
	return a
}
