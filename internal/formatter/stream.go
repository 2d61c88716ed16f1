package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

// Stream writes successive reports to one writer. CSV output shares a
// single header row; other formats are written back to back.
type Stream struct {
	w         io.Writer
	formatter Formatter
	csv       *csv.Writer
	header    bool
}

// NewStream creates a stream for the given output format
func NewStream(w io.Writer, format string, opts Options) (*Stream, error) {
	f, err := New(format, opts)
	if err != nil {
		return nil, err
	}

	s := &Stream{w: w, formatter: f}
	if strings.EqualFold(format, "csv") {
		s.csv = csv.NewWriter(w)
	}
	return s, nil
}

// Write formats and writes one report
func (s *Stream) Write(report *workflow.Report) error {
	if s.csv != nil {
		return s.writeCSV(report)
	}

	out, err := s.formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if _, err := s.w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(s.w, "\n")
	}
	return err
}

func (s *Stream) writeCSV(report *workflow.Report) error {
	if !s.header {
		if err := s.csv.Write(CSVHeader); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
		s.header = true
	}
	if err := s.csv.Write(CSVRecord(report)); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}
	s.csv.Flush()
	return s.csv.Error()
}
