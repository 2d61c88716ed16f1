package workflow

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/MazeSolve/internal/preview"
	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
)

type fakeSolver struct {
	calls int
	ids   []string
	solve func(ctx context.Context, c *upload.Candidate) (*solver.Response, error)
}

func (f *fakeSolver) Solve(ctx context.Context, c *upload.Candidate, requestID string) (*solver.Response, error) {
	f.calls++
	f.ids = append(f.ids, requestID)
	if f.solve == nil {
		return &solver.Response{GifURL: "/static_files/maze_solution.gif"}, nil
	}
	return f.solve(ctx, c)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 4, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func sized(name, mediaType string, size int64) *upload.Candidate {
	return upload.New(name, mediaType, size, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("")), nil
	})
}

func TestSelectValidImageShowsPreview(t *testing.T) {
	c := NewController(Options{})
	v := c.SelectAndWait(context.Background(), upload.FromBytes("maze.png", pngBytes(t)))

	if v.State != StatePreviewReady {
		t.Fatalf("expected preview_ready, got %s", v.State)
	}
	if !v.PreviewVisible || v.Preview == nil {
		t.Fatal("expected preview to be visible")
	}
	if !strings.HasPrefix(v.Preview.DataURI, "data:image/png;base64,") {
		t.Errorf("unexpected data URI prefix: %.30s", v.Preview.DataURI)
	}
	if v.Status.Kind != StatusInfo || v.Status.Text != MsgPreviewReady {
		t.Errorf("unexpected status: %+v", v.Status)
	}
	if v.CandidateName != "maze.png" {
		t.Errorf("expected candidate name maze.png, got %q", v.CandidateName)
	}
}

func TestSelectRejectsInvalidCandidates(t *testing.T) {
	tests := []struct {
		name      string
		candidate *upload.Candidate
		kind      upload.ErrorKind
		message   string
	}{
		{"no file", nil, upload.KindNoFileSelected, upload.ReasonNoFile},
		{"text file", sized("notes.txt", "text/plain", 10), upload.KindUnsupportedType, upload.ReasonUnsupportedType},
		{"webp", sized("maze.webp", "image/webp", 10), upload.KindUnsupportedType, upload.ReasonUnsupportedType},
		{"one byte over", sized("big.png", "image/png", upload.MaxFileSize+1), upload.KindFileTooLarge, upload.ReasonTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(Options{})
			if job := c.Select(tt.candidate); job != nil {
				t.Fatal("expected no preview job for rejected candidate")
			}

			v := c.View()
			if v.State != StateIdle {
				t.Errorf("expected idle, got %s", v.State)
			}
			if v.PreviewVisible {
				t.Error("preview should stay hidden")
			}
			if v.Status.Kind != StatusError || v.Status.Text != tt.message {
				t.Errorf("unexpected status: %+v", v.Status)
			}
			if !upload.IsKind(c.Err(), tt.kind) {
				t.Errorf("expected kind %s, got %v", tt.kind, c.Err())
			}
		})
	}
}

func TestSelectAtSizeLimitIsAccepted(t *testing.T) {
	c := NewController(Options{})
	if job := c.Select(sized("limit.png", "image/png", upload.MaxFileSize)); job == nil {
		t.Fatalf("expected 5 MiB candidate to pass validation, status %+v", c.View().Status)
	}
}

func TestPreviewDecodeFailureIsUnsupportedType(t *testing.T) {
	c := NewController(Options{})
	v := c.SelectAndWait(context.Background(), sized("broken.png", "image/png", 10))

	if v.State != StateIdle {
		t.Errorf("expected idle, got %s", v.State)
	}
	if v.PreviewVisible {
		t.Error("preview should be hidden after decode failure")
	}
	if !upload.IsKind(c.Err(), upload.KindUnsupportedType) {
		t.Errorf("expected unsupported type, got %v", c.Err())
	}
}

func TestSubmitAfterDecodeFailureNeverCallsSolver(t *testing.T) {
	s := &fakeSolver{}
	c := NewController(Options{Solver: s})

	broken := append([]byte("\x89PNG\r\n\x1a\n"), []byte("not really a png")...)
	c.SelectAndWait(context.Background(), upload.FromBytes("broken.png", broken))
	if !upload.IsKind(c.Err(), upload.KindUnsupportedType) {
		t.Fatalf("setup: expected decode failure, got %v", c.Err())
	}

	attempt, err := c.Submit(context.Background())
	if attempt != nil || !upload.IsKind(err, upload.KindUnsupportedType) {
		t.Fatalf("expected unsupported_type refusal, got attempt=%v err=%v", attempt, err)
	}
	if s.calls != 0 {
		t.Errorf("solver must not be called, got %d calls", s.calls)
	}
	v := c.View()
	if v.State != StateFailed || v.Status.Text != ErrorPrefix+preview.ReasonDecodeFailed {
		t.Errorf("unexpected view state=%s status=%q", v.State, v.Status.Text)
	}

	// A fresh selection clears the refusal
	c.SelectAndWait(context.Background(), upload.FromBytes("maze.png", pngBytes(t)))
	if _, err := c.Submit(context.Background()); err != nil {
		t.Errorf("expected submit of a decodable image, got %v", err)
	}
}

func TestStalePreviewIsDropped(t *testing.T) {
	c := NewController(Options{})
	data := pngBytes(t)

	first := c.Select(upload.FromBytes("first.png", data))
	second := c.Select(upload.FromBytes("second.png", data))

	c.PreviewDone(first.Run(context.Background()))
	if c.View().PreviewVisible {
		t.Fatal("preview for replaced selection must not be shown")
	}

	c.PreviewDone(second.Run(context.Background()))
	v := c.View()
	if !v.PreviewVisible || v.Preview.Name != "second.png" {
		t.Errorf("expected preview for second.png, got %+v", v.Preview)
	}
}

func TestPickerChangeFirstPathWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.txt")
	if err := os.WriteFile(first, pngBytes(t), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewController(Options{})
	job := c.PickerChange([]string{first, second})
	if job == nil {
		t.Fatalf("expected first path to be selected, status %+v", c.View().Status)
	}
	if c.Candidate().Name != "first.png" {
		t.Errorf("expected first.png, got %s", c.Candidate().Name)
	}
}

func TestPickerChangeEmptyAndUnreadable(t *testing.T) {
	c := NewController(Options{})

	if job := c.PickerChange(nil); job != nil {
		t.Fatal("expected no job for empty selection")
	}
	if c.View().Status.Text != upload.ReasonNoFile {
		t.Errorf("unexpected status: %q", c.View().Status.Text)
	}

	missing := filepath.Join(t.TempDir(), "gone.png")
	if job := c.PickerChange([]string{missing}); job != nil {
		t.Fatal("expected no job for unreadable file")
	}
	if !upload.IsKind(c.Err(), upload.KindUnsupportedType) {
		t.Errorf("expected unsupported_type, got %v", c.Err())
	}
	if !strings.Contains(c.View().Status.Text, "gone.png") {
		t.Errorf("expected file name in status, got %q", c.View().Status.Text)
	}
}

func TestOpenerIsInjectable(t *testing.T) {
	opened := ""
	c := NewController(Options{Open: func(path string) (*upload.Candidate, error) {
		opened = path
		return nil, errors.New("denied")
	}})

	c.PickerChange([]string{"/mazes/a.png"})
	if opened != "/mazes/a.png" {
		t.Errorf("expected opener to receive path, got %q", opened)
	}
}
