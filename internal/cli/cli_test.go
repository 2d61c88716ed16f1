package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yildizm/MazeSolve/internal/formatter"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

func writeMaze(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		img.SetGray(x, 8, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// solverServer answers solve requests with body and serves the animation
func solverServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var solves int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/solve_maze":
			atomic.AddInt32(&solves, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case "/static_files/maze_solution.gif":
			_, _ = w.Write([]byte("GIF89a"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &solves
}

const solvedBody = `{"gifUrl": "/static_files/maze_solution.gif", "stats": {"pathLength": 42, "exploredCells": 530, "processingTime": 1.234}}`

// execute runs the root command with isolated config search paths
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCommand("test", "abc123", "today")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestSolveCommandSuccess(t *testing.T) {
	server, solves := solverServer(t, http.StatusOK, solvedBody)
	maze := writeMaze(t, t.TempDir(), "maze.png")

	out, err := execute(t, "solve", "--endpoint", server.URL, "-o", "json", maze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(solves) != 1 {
		t.Errorf("expected one solve request, got %d", *solves)
	}

	var decoded formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded.State != "success" {
		t.Errorf("expected success, got %q", decoded.State)
	}
	if decoded.Stats == nil || decoded.Stats.PathLength != 42 {
		t.Errorf("unexpected stats %+v", decoded.Stats)
	}
	if decoded.Solution == nil || decoded.Solution.AnimationURL != server.URL+"/static_files/maze_solution.gif" {
		t.Errorf("expected resolved animation URL, got %+v", decoded.Solution)
	}
}

func TestSolveCommandSave(t *testing.T) {
	server, _ := solverServer(t, http.StatusOK, solvedBody)
	maze := writeMaze(t, t.TempDir(), "maze.png")
	saveDir := t.TempDir()

	if _, err := execute(t, "solve", "--endpoint", server.URL, "--save", "--download-dir", saveDir, maze); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(saveDir, "maze_solution.gif"))
	if err != nil {
		t.Fatalf("animation not saved: %v", err)
	}
	if string(data) != "GIF89a" {
		t.Errorf("unexpected animation content %q", data)
	}
}

func TestSolveCommandServerFailure(t *testing.T) {
	server, _ := solverServer(t, http.StatusInternalServerError, `{"error": "No path found in the maze"}`)
	maze := writeMaze(t, t.TempDir(), "maze.png")

	out, err := execute(t, "solve", "--endpoint", server.URL, "--no-emoji", maze)
	if err == nil {
		t.Fatal("expected non-nil error for failed solve")
	}
	if !strings.Contains(out, "Error: No path found in the maze") {
		t.Errorf("expected server message in output:\n%s", out)
	}
}

func TestSolveCommandRejectsUnsupportedFile(t *testing.T) {
	server, solves := solverServer(t, http.StatusOK, solvedBody)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a maze"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "solve", "--endpoint", server.URL, "-o", "csv", path)
	if err == nil {
		t.Fatal("expected error for unsupported file")
	}
	if atomic.LoadInt32(solves) != 0 {
		t.Error("unsupported file must not reach the server")
	}
	if !strings.Contains(out, "unsupported_type") {
		t.Errorf("expected unsupported_type in CSV output:\n%s", out)
	}
}

func TestSolveCommandInvalidEndpoint(t *testing.T) {
	if _, err := execute(t, "solve", "--endpoint", "ftp://example.com", "maze.png"); err == nil {
		t.Error("expected error for non-http endpoint")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mazesolve.yaml")

	out, err := execute(t, "--no-emoji", "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected created path in output: %s", out)
	}

	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Error("expected error when config already exists")
	}

	out, err = execute(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"Configuration is valid", "http://localhost:5000/solve_maze", "mazeImage"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowAppliesEndpointFlag(t *testing.T) {
	out, err := execute(t, "--endpoint", "http://solver.internal:8080", "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, `"endpoint": "http://solver.internal:8080"`) {
		t.Errorf("expected overridden endpoint:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "MazeSolve test (abc123) built on today") {
		t.Errorf("unexpected version output: %s", out)
	}
}

func TestHandleWatchEventSolvesDrops(t *testing.T) {
	server, solves := solverServer(t, http.StatusOK, solvedBody)
	maze := writeMaze(t, t.TempDir(), "maze.png")

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	endpointURL = server.URL
	outputFmt = "csv"
	watchAutoSolve = true
	t.Cleanup(func() { endpointURL, outputFmt = "", "" })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	s, err := newSession(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	stream, err := formatter.NewStream(&out, outputFormat(cfg), formatterOptions(cfg, false))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for _, ev := range []*workflow.DragEvent{
		workflow.NewDragEvent(workflow.DragEnter),
		workflow.NewDragEvent(workflow.DragOver),
		workflow.NewDragEvent(workflow.Drop, maze),
	} {
		report, err := handleWatchEvent(ctx, s, ev, stream, t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if (report != nil) != (ev.Kind == workflow.Drop) {
			t.Errorf("%s: report only expected for drops, got %v", ev.Kind, report)
		}
	}

	if atomic.LoadInt32(solves) != 1 {
		t.Errorf("expected one solve for one drop, got %d", *solves)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one record, got %q", out.String())
	}
	if !strings.Contains(lines[1], "maze.png") || !strings.Contains(lines[1], "success") {
		t.Errorf("unexpected record %q", lines[1])
	}
}
