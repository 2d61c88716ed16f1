package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

func newZone(t *testing.T, settle time.Duration) *DropZone {
	t.Helper()
	zone, err := New(Options{Dir: t.TempDir(), Settle: settle})
	if err != nil {
		t.Fatalf("failed to create drop zone: %v", err)
	}
	return zone
}

func TestHandleSequence(t *testing.T) {
	zone := newZone(t, time.Second)
	defer closeWatcher(zone.watcher, zone.log)

	path := filepath.Join(zone.Dir(), "maze.png")
	now := time.Now()

	tests := []struct {
		op   fsnotify.Op
		want workflow.DragKind
	}{
		{fsnotify.Create, workflow.DragEnter},
		{fsnotify.Write, workflow.DragOver},
		{fsnotify.Write, workflow.DragOver},
		{fsnotify.Remove, workflow.DragLeave},
	}

	for i, tt := range tests {
		ev := zone.handle(fsnotify.Event{Name: path, Op: tt.op}, now)
		if ev == nil {
			t.Fatalf("step %d: expected %s, got nil", i, tt.want)
		}
		if ev.Kind != tt.want {
			t.Errorf("step %d: expected %s, got %s", i, tt.want, ev.Kind)
		}
	}

	if ev := zone.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove}, now); ev != nil {
		t.Errorf("remove of untracked file should be ignored, got %s", ev.Kind)
	}
}

func TestFlushHonoursSettleDelay(t *testing.T) {
	zone := newZone(t, time.Second)
	defer closeWatcher(zone.watcher, zone.log)

	path := filepath.Join(zone.Dir(), "maze.png")
	start := time.Now()
	zone.handle(fsnotify.Event{Name: path, Op: fsnotify.Create}, start)

	if drops := zone.flush(start.Add(500 * time.Millisecond)); len(drops) != 0 {
		t.Fatalf("file dropped before settle delay: %v", drops)
	}

	drops := zone.flush(start.Add(time.Second))
	if len(drops) != 1 {
		t.Fatalf("expected one drop, got %d", len(drops))
	}
	if drops[0].Kind != workflow.Drop || len(drops[0].Files) != 1 || drops[0].Files[0] != path {
		t.Errorf("unexpected drop event: %+v", drops[0])
	}
	if len(zone.pending) != 0 {
		t.Error("dropped file should no longer be pending")
	}
}

func TestIgnoredNames(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"maze.png", false},
		{".maze.png", true},
		{"maze.png~", true},
		{"maze.png.part", true},
		{"maze.png.crdownload", true},
		{"maze.bmp", false},
	}

	for _, tt := range tests {
		if got := ignored(filepath.Join("/drop", tt.name)); got != tt.want {
			t.Errorf("ignored(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewRejectsInvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"", "   ", file, filepath.Join(t.TempDir(), "missing")} {
		if _, err := New(Options{Dir: dir}); err == nil {
			t.Errorf("expected error for %q", dir)
		}
	}
}

func TestRunEmitsDrop(t *testing.T) {
	zone := newZone(t, 100*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- zone.Run(ctx) }()

	path := filepath.Join(zone.Dir(), "maze.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	var kinds []workflow.DragKind
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-zone.Events():
			kinds = append(kinds, ev.Kind)
			if ev.Kind != workflow.Drop {
				continue
			}
			if len(ev.Files) != 1 || ev.Files[0] != path {
				t.Errorf("unexpected drop files %v", ev.Files)
			}
			if kinds[0] != workflow.DragEnter {
				t.Errorf("expected sequence to start with dragenter, got %v", kinds)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("unexpected run error: %v", err)
			}
			return
		case <-timeout:
			t.Fatalf("no drop received, saw %v", kinds)
		}
	}
}
