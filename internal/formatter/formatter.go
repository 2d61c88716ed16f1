package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *workflow.Report) ([]byte, error)
}

// Options controls terminal rendering
type Options struct {
	Color     bool
	Emoji     bool
	Thumbnail bool
}

// New returns the formatter for the given output format
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Formats lists the accepted output format names
func Formats() []string {
	return []string{"text", "json", "markdown", "csv"}
}
