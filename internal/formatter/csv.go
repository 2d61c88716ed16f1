package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

// csvFormatter formats a report as a single CSV record under a header row
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

// CSVHeader is the column layout written by the CSV formatter
var CSVHeader = []string{
	"File",
	"Media Type",
	"Size",
	"State",
	"Path Length",
	"Cells Explored",
	"Processing Time",
	"Animation URL",
	"Error Kind",
	"Status",
}

func (f *csvFormatter) Format(report *workflow.Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.Write(CSVRecord(report)); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// CSVRecord returns the CSV columns for one report
func CSVRecord(report *workflow.Report) []string {
	pathLength, explored, processing := "", "", ""
	if report.Stats != nil {
		pathLength = fmt.Sprintf("%d", report.Stats.PathLength)
		explored = fmt.Sprintf("%d", report.Stats.ExploredCells)
		processing = fmt.Sprintf("%.2f", report.Stats.ProcessingTime)
	}

	return []string{
		report.File,
		report.MediaType,
		fmt.Sprintf("%d", report.Size),
		report.State.String(),
		pathLength,
		explored,
		processing,
		report.AnimationURL,
		string(report.ErrorKind),
		escapeCSVString(report.Status),
	}
}

// escapeCSVString flattens and truncates free text for CSV
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if len(s) > 100 {
		s = s[:97] + "..."
	}

	return s
}
