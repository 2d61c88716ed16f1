package workflow

import (
	"fmt"

	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
)

// succeed renders a solved maze
func (c *Controller) succeed(resp *solver.Response) {
	c.view.clearResult()
	c.view.State = StateSuccess

	c.view.AnimationRef = resp.GifURL
	c.view.AnimationVisible = true
	c.view.DownloadRef = resp.GifURL
	c.view.DownloadVisible = true

	c.view.Status = Status{
		Kind:  StatusSuccess,
		Text:  MsgSolved,
		Stats: FormatStats(resp.Stats),
	}
}

// fail renders a failed attempt and keeps the result region hidden
func (c *Controller) fail(err error) {
	c.lastErr = err
	c.view.clearResult()
	c.view.State = StateFailed
	c.view.Status = Status{Kind: StatusError, Text: ErrorPrefix + upload.MessageOf(err)}
}

// FormatStats renders the stats lines, or nil when stats are absent
func FormatStats(stats *solver.Stats) []string {
	if stats == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Path Length: %d", stats.PathLength),
		fmt.Sprintf("Cells Explored: %d", stats.ExploredCells),
		fmt.Sprintf("Processing Time: %.2fs", stats.ProcessingTime),
	}
}
