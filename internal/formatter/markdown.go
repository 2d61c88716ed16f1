package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *workflow.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Maze Solve Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, report)

	if report.Stats != nil {
		f.writeStatistics(&b, report)
	}
	if report.AnimationURL != "" {
		f.writeSolution(&b, report)
	}
	f.writeSuggestions(&b, report)

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by MazeSolve*\n")

	return []byte(b.String()), nil
}

// writeSummaryTable writes the file and status summary
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *workflow.Report) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| File | %s |\n", escapeCell(report.File))
	if report.MediaType != "" {
		fmt.Fprintf(b, "| Type | %s |\n", report.MediaType)
		fmt.Fprintf(b, "| Size | %s |\n", formatBytes(report.Size))
	}
	if report.PreviewDimensions != "" {
		fmt.Fprintf(b, "| Dimensions | %s |\n", report.PreviewDimensions)
	}
	fmt.Fprintf(b, "| State | %s |\n", report.State)
	fmt.Fprintf(b, "| Status | %s |\n\n", escapeCell(report.Status))
}

// writeStatistics writes the solve statistics
func (f *markdownFormatter) writeStatistics(b *strings.Builder, report *workflow.Report) {
	stats := report.Stats
	b.WriteString("## Statistics\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Path Length | %s |\n", formatNumber(stats.PathLength))
	fmt.Fprintf(b, "| Cells Explored | %s |\n", formatNumber(stats.ExploredCells))
	fmt.Fprintf(b, "| Processing Time | %.2fs |\n", stats.ProcessingTime)
	fmt.Fprintf(b, "| Efficiency | %.0f%% |\n\n", efficiency(stats)*100)
}

// writeSolution writes the animation link and image
func (f *markdownFormatter) writeSolution(b *strings.Builder, report *workflow.Report) {
	b.WriteString("## Solution\n\n")
	fmt.Fprintf(b, "![Solved maze](%s)\n\n", report.AnimationURL)
	fmt.Fprintf(b, "[Download solution](%s)\n", report.DownloadURL)
	if report.SavedTo != "" {
		fmt.Fprintf(b, "\nSaved to `%s`\n", report.SavedTo)
	}
	b.WriteString("\n")
}

// writeSuggestions writes follow-up hints, if any
func (f *markdownFormatter) writeSuggestions(b *strings.Builder, report *workflow.Report) {
	hints := suggestions(report)
	if len(hints) == 0 {
		return
	}

	b.WriteString("## Suggestions\n\n")
	for i, hint := range hints {
		fmt.Fprintf(b, "%d. %s\n", i+1, hint)
	}
}

// escapeCell keeps pipes from breaking table rows
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
