package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestVerboseGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("solver", &buf, false)

	l.Debug("hidden %d", 1)
	l.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output when not verbose, got %q", buf.String())
	}

	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	if !strings.Contains(out, "WARN [solver] shown warn") {
		t.Errorf("Missing warn line in %q", out)
	}
	if !strings.Contains(out, "ERROR [solver] shown error") {
		t.Errorf("Missing error line in %q", out)
	}
}

func TestFieldsAndComponents(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("", &buf, true)

	l.InfoWithFields("submitted", []Field{Attempt("abc"), Bytes(42), Status(200)})
	if !strings.Contains(buf.String(), "INFO [main] submitted [attempt=abc bytes=42 status=200]") {
		t.Errorf("Unexpected line %q", buf.String())
	}

	buf.Reset()
	child := l.WithComponent("watch")
	child.WarnWithFields("dropped", []Field{Path("/tmp/m.png"), Error(errors.New("boom"))})
	if !strings.Contains(buf.String(), "WARN [watch] dropped [path=/tmp/m.png error=boom]") {
		t.Errorf("Derived logger should share output, got %q", buf.String())
	}

	var other bytes.Buffer
	child.SetOutput(&other)
	l.Warn("redirected")
	if !strings.Contains(other.String(), "redirected") {
		t.Error("SetOutput should redirect the shared sink")
	}
}

func TestPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("x", &buf, false)
	l.Warn("100% done")
	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("Message without args must be written verbatim, got %q", buf.String())
	}
}
