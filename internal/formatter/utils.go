package formatter

import (
	"fmt"

	"github.com/yildizm/MazeSolve/internal/emoji"
	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatBytes renders a byte count in binary units
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// efficiency is the share of explored cells that ended up on the path
func efficiency(stats *solver.Stats) float64 {
	if stats == nil || stats.ExploredCells <= 0 {
		return 0
	}
	ratio := float64(stats.PathLength) / float64(stats.ExploredCells)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// getStateEmoji returns emoji for the workflow state
func getStateEmoji(state workflow.State, enabled bool) string {
	switch state {
	case workflow.StateSuccess:
		return emoji.Lookup("success", enabled)
	case workflow.StateFailed:
		return emoji.Lookup("error", enabled)
	case workflow.StateSubmitting:
		return emoji.Lookup("processing", enabled)
	default:
		return emoji.Lookup("maze", enabled)
	}
}

// suggestions returns follow-up hints for a report
func suggestions(report *workflow.Report) []string {
	switch report.ErrorKind {
	case "":
		if report.Stats != nil && efficiency(report.Stats) < 0.1 {
			return []string{"Most explored cells were dead ends; the maze has many branches"}
		}
		return nil
	case upload.KindUnsupportedType:
		return []string{"Convert the maze to PNG, JPEG, GIF or BMP and try again"}
	case upload.KindFileTooLarge:
		return []string{"Downscale or recompress the image below 5MB"}
	case upload.KindNoFileSelected:
		return []string{"Pass an image path or drop a file onto the drop region"}
	case upload.KindNetworkOrServer:
		return []string{"Check that the solver server is running and the endpoint is correct"}
	default:
		return []string{"Check that the image is a clean black-and-white maze with an open entrance and exit"}
	}
}
