package ui

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewPickerSkipsHiddenAndDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", ".hidden.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatal(err)
	}

	p, err := NewPicker(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.png", "b.png"}; !reflect.DeepEqual(p.Visible(), want) {
		t.Errorf("expected %v, got %v", want, p.Visible())
	}

	path, ok := p.SelectedPath()
	if !ok || path != filepath.Join(dir, "a.png") {
		t.Errorf("unexpected selected path %q", path)
	}
}

func TestNewPickerMissingDir(t *testing.T) {
	if _, err := NewPicker(filepath.Join(t.TempDir(), "missing"), 5); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestPickerRanking(t *testing.T) {
	p := &Picker{Height: 5}
	p.SetItems([]string{"notes.txt", "big-maze.png", "maze.png", "maez.bmp"})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"notes.txt", "big-maze.png", "maze.png", "maez.bmp"}},
		{"maze", []string{"maze.png", "big-maze.png", "maez.bmp"}},
		{"MAZE", []string{"maze.png", "big-maze.png", "maez.bmp"}},
		{"zzzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p.SetSearch(tt.query)
			if got := p.Visible(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("query %q: expected %v, got %v", tt.query, tt.want, got)
			}
		})
	}
}

func TestPickerMovementStaysInRange(t *testing.T) {
	p := &Picker{Height: 5}
	p.SetItems([]string{"a", "b"})

	p.MoveUp()
	if p.Selected != 0 {
		t.Errorf("expected 0, got %d", p.Selected)
	}
	p.MoveDown()
	p.MoveDown()
	if p.Selected != 1 {
		t.Errorf("expected 1, got %d", p.Selected)
	}

	p.SetSearch("zzzz")
	if _, ok := p.SelectedPath(); ok {
		t.Error("no path expected when nothing matches")
	}
}

func TestPickerRender(t *testing.T) {
	p := &Picker{Dir: "/mazes", Height: 1, Focused: true}
	p.SetItems([]string{"a.png", "b.png"})

	out := p.Render(NewStyles(DefaultTheme, false), 40)
	for _, want := range []string{"/mazes", "> a.png", "(1-1 of 2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if similarity("", "") != 1 {
		t.Error("empty strings should be identical")
	}
	if got := similarity("maze", "maez"); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}
