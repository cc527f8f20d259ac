package grid

import (
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/script"
)

func TestParseBasicGrid(t *testing.T) {
	data := []byte(`{
		"rows": [
			[
				{"key": "t", "mods": ["cmd"], "desc": "Terminal", "app": "kitty"},
				{"key": "n", "desc": "Notes", "file": "/home/u/notes.md"},
				{"desc": "Soon", "empty": true},
				{}
			]
		]
	}`)

	m, err := NewLoader().Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	rows, cols := m.Dimensions()
	if rows != 1 || cols != 4 {
		t.Fatalf("dimensions = (%d, %d), want (1, 4)", rows, cols)
	}

	tests := []struct {
		col  int
		kind action.Kind
	}{
		{0, action.KindApp},
		{1, action.KindFile},
		{2, action.KindEmpty},
		{3, action.KindSpacer},
	}
	for _, tt := range tests {
		if got := m[0][tt.col].Kind; got != tt.kind {
			t.Errorf("cell %d kind = %v, want %v", tt.col, got, tt.kind)
		}
	}

	if m[0][0].ID != "r1c1" {
		t.Errorf("stable ID = %q, want r1c1", m[0][0].ID)
	}
	if got := m[0][0].Mods; len(got) != 1 || got[0] != "cmd" {
		t.Errorf("mods = %v, want [cmd]", got)
	}
	if m[0][1].Description != "Notes" {
		t.Errorf("description = %q, want Notes", m[0][1].Description)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := NewLoader().Parse([]byte(`{"rows": [`)); err == nil {
		t.Error("Parse accepted truncated JSON")
	}
	if _, err := NewLoader().Parse([]byte(`{"cells": []}`)); err == nil {
		t.Error("Parse accepted a grid without rows")
	}
}

func TestMalformedCellDegradesToSpacer(t *testing.T) {
	data := []byte(`{
		"rows": [
			[42, {"key": "t", "desc": "Terminal", "app": "kitty"}]
		]
	}`)

	m, err := NewLoader().Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := m[0][0].Kind; got != action.KindSpacer {
		t.Errorf("malformed cell kind = %v, want spacer", got)
	}
	if got := m[0][1].Kind; got != action.KindApp {
		t.Errorf("healthy neighbor kind = %v, want app", got)
	}
}

func TestNestedGrid(t *testing.T) {
	data := []byte(`{
		"rows": [
			[
				{"key": "g", "desc": "Dev", "grid": {
					"rows": [[{"key": "x", "desc": "X", "app": "xterm"}]]
				}}
			]
		]
	}`)

	m, err := NewLoader().Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	a := m[0][0]
	if a.Kind != action.KindSubmenu {
		t.Fatalf("kind = %v, want submenu", a.Kind)
	}
	inner := (*a.Submenu)[0][0]
	if inner.Kind != action.KindApp {
		t.Errorf("nested kind = %v, want app", inner.Kind)
	}
	if inner.ID != "r1c1/r1c1" {
		t.Errorf("nested ID = %q, want r1c1/r1c1", inner.ID)
	}

	// An invalid nested grid takes down only its own cell.
	data = []byte(`{"rows": [[{"key": "g", "grid": {"rows": 7}}]]}`)
	m, err = NewLoader().Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := m[0][0].Kind; got != action.KindSpacer {
		t.Errorf("invalid nested grid kind = %v, want spacer", got)
	}
}

func TestRunCells(t *testing.T) {
	data := []byte(`{"rows": [[{"key": "b", "desc": "Backup", "run": "emit('ran')"}]]}`)

	t.Run("without runner", func(t *testing.T) {
		m, err := NewLoader().Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got := m[0][0].Kind; got != action.KindSpacer {
			t.Errorf("run cell kind = %v, want spacer (no script support)", got)
		}
	})

	t.Run("with runner", func(t *testing.T) {
		var got string
		runner := script.NewRunner(script.WithGlobal("emit", func(L *lua.LState) int {
			got = L.ToString(1)
			return 0
		}))

		m, err := NewLoader(WithScripts(runner)).Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		a := m[0][0]
		if a.Kind != action.KindCustom {
			t.Fatalf("kind = %v, want custom", a.Kind)
		}
		a.Handler()()
		if got != "ran" {
			t.Errorf("handler emitted %q, want ran", got)
		}
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.json")
	if err := os.WriteFile(path, []byte(`{"rows": [[{"key": "t", "app": "kitty"}]]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if rows, _ := m.Dimensions(); rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	if _, err := NewLoader().LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile accepted a missing file")
	}
}
