package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/MazeSolve/internal/emoji"
	"github.com/yildizm/MazeSolve/internal/workflow"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats a report as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts      *termfmt.TerminalOptions
	thumbnail bool
}

// NewTerminal creates a new terminal formatter
func NewTerminal(opts Options) Formatter {
	termOpts := termfmt.DefaultOptions()
	termOpts.Color = opts.Color
	termOpts.Emoji = opts.Emoji
	return &terminalFormatter{opts: termOpts, thumbnail: opts.Thumbnail}
}

func (f *terminalFormatter) Format(report *workflow.Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeFile(&b, report)

	if f.thumbnail && len(report.Thumbnail) > 0 {
		f.writeThumbnail(&b, report.Thumbnail)
	}

	f.writeStatus(&b, report)

	if report.Stats != nil || len(report.StatsLines) > 0 {
		f.writeStatistics(&b, report)
	}
	if report.AnimationURL != "" {
		f.writeResult(&b, report)
	}

	f.writeSuggestions(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Maze Solver"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeFile writes the selected file attributes as a tree
func (f *terminalFormatter) writeFile(b *strings.Builder, report *workflow.Report) {
	b.WriteString(emoji.Lookup("image", f.opts.Emoji) + " Image\n")

	name := report.File
	if name == "" {
		name = "(none)"
	}
	items := []termfmt.TreeItem{
		{Label: "File", Value: name},
	}
	if report.MediaType != "" {
		items = append(items,
			termfmt.TreeItem{Label: "Type", Value: report.MediaType},
			termfmt.TreeItem{Label: "Size", Value: formatBytes(report.Size)},
		)
	}
	if report.PreviewDimensions != "" {
		items = append(items, termfmt.TreeItem{Label: "Dimensions", Value: report.PreviewDimensions})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeThumbnail writes the character preview
func (f *terminalFormatter) writeThumbnail(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

// writeStatus writes the single status line
func (f *terminalFormatter) writeStatus(b *strings.Builder, report *workflow.Report) {
	fmt.Fprintf(b, "%s %s\n\n", getStateEmoji(report.State, f.opts.Emoji), report.Status)
}

// writeStatistics writes the solve statistics with a search efficiency bar
func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *workflow.Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	var items []termfmt.TreeItem
	if stats := report.Stats; stats != nil {
		items = []termfmt.TreeItem{
			{Label: "Path Length", Value: formatNumber(stats.PathLength)},
			{Label: "Cells Explored", Value: formatNumber(stats.ExploredCells)},
			{Label: "Processing Time", Value: fmt.Sprintf("%.2fs", stats.ProcessingTime)},
		}
		bar := termfmt.CreateConfidenceBar(efficiency(stats), f.opts)
		items = append(items, termfmt.TreeItem{
			Label: "Efficiency",
			Value: fmt.Sprintf("%s %.0f%%", bar, efficiency(stats)*100),
		})
	} else {
		for _, line := range report.StatsLines {
			label, value, _ := strings.Cut(line, ": ")
			items = append(items, termfmt.TreeItem{Label: label, Value: value})
		}
	}
	if report.Elapsed > 0 {
		items = append(items, termfmt.TreeItem{Label: "Round Trip", Value: report.Elapsed.Round(time.Millisecond).String()})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeResult writes where the solution animation can be found
func (f *terminalFormatter) writeResult(b *strings.Builder, report *workflow.Report) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Solution\n")

	items := []termfmt.TreeItem{
		{Label: "Animation", Value: report.AnimationURL},
		{Label: "Download", Value: report.DownloadURL},
	}
	if report.SavedTo != "" {
		items = append(items, termfmt.TreeItem{Label: "Saved To", Value: report.SavedTo})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeSuggestions writes follow-up hints, if any
func (f *terminalFormatter) writeSuggestions(b *strings.Builder, report *workflow.Report) {
	hints := suggestions(report)
	if len(hints) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Suggestions\n")
	for _, hint := range hints {
		b.WriteString("• " + hint + "\n")
	}
}
