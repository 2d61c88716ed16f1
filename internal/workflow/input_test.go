package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yildizm/MazeSolve/internal/upload"
)

func TestHandleDragHighlight(t *testing.T) {
	c := NewController(Options{})

	steps := []struct {
		kind      DragKind
		highlight bool
	}{
		{DragEnter, true},
		{DragOver, true},
		{DragLeave, false},
		{DragOver, true},
		{Drop, false},
	}

	for _, step := range steps {
		ev := NewDragEvent(step.kind)
		c.HandleDrag(ev)
		if !ev.DefaultPrevented() {
			t.Errorf("%s: default handling must be prevented", step.kind)
		}
		if got := c.View().DropHighlight; got != step.highlight {
			t.Errorf("%s: expected highlight %v, got %v", step.kind, step.highlight, got)
		}
	}
}

func TestDropMatchesPicker(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "maze.png")
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(valid, pngBytes(t), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(text, []byte("plain text, not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, files := range [][]string{{valid}, {text}, {valid, text}, nil} {
		picked := NewController(Options{})
		if job := picked.PickerChange(files); job != nil {
			picked.PreviewDone(job.Run(context.Background()))
		}

		dropped := NewController(Options{})
		if job := dropped.HandleDrag(NewDragEvent(Drop, files...)); job != nil {
			dropped.PreviewDone(job.Run(context.Background()))
		}

		pv, dv := picked.View(), dropped.View()
		if pv.State != dv.State || pv.Status.Text != dv.Status.Text || pv.PreviewVisible != dv.PreviewVisible {
			t.Errorf("files %v: picker view %+v differs from drop view %+v", files, pv.Status, dv.Status)
		}
	}
}

func TestDropOfUnsupportedFileStillClearsHighlight(t *testing.T) {
	c := NewController(Options{Open: func(string) (*upload.Candidate, error) {
		return sized("doc.pdf", "application/pdf", 42), nil
	}})

	c.HandleDrag(NewDragEvent(DragEnter))
	c.HandleDrag(NewDragEvent(Drop, "/tmp/doc.pdf"))

	v := c.View()
	if v.DropHighlight {
		t.Error("highlight must be cleared on drop")
	}
	if v.Status.Text != upload.ReasonUnsupportedType {
		t.Errorf("unexpected status %q", v.Status.Text)
	}
}

func TestDragKindString(t *testing.T) {
	if Drop.String() != "drop" || DragKind(99).String() != "unknown" {
		t.Error("unexpected drag kind names")
	}
}
