package ui

import (
	"reflect"
	"testing"
)

func TestParseDroppedPaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "/tmp/maze.png", []string{"/tmp/maze.png"}},
		{"trailing space", "/tmp/maze.png ", []string{"/tmp/maze.png"}},
		{"single quoted", "'/tmp/my maze.png'", []string{"/tmp/my maze.png"}},
		{"double quoted", `"/tmp/my maze.png"`, []string{"/tmp/my maze.png"}},
		{"escaped spaces", `/tmp/my\ maze.png`, []string{"/tmp/my maze.png"}},
		{"several", "/tmp/a.png /tmp/b.png", []string{"/tmp/a.png", "/tmp/b.png"}},
		{"newline separated", "/tmp/a.png\n/tmp/b.png\n", []string{"/tmp/a.png", "/tmp/b.png"}},
		{"file uri", "file:///tmp/my%20maze.png", []string{"/tmp/my maze.png"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDroppedPaths(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDroppedPaths(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
