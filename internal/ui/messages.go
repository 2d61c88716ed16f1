package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/MazeSolve/internal/workflow"
)

// Messages delivered back to the event loop by background commands
type previewDoneMsg struct {
	result workflow.PreviewResult
}

type settledMsg struct {
	outcome workflow.Outcome
}

type dragMsg struct {
	event *workflow.DragEvent
}

type dropClosedMsg struct{}

// pasteDropMsg completes a pasted drop one frame after its DragEnter
type pasteDropMsg struct {
	event *workflow.DragEvent
}

type downloadDoneMsg struct {
	path string
	err  error
}

// Downloader fetches a solved animation to local disk
type Downloader interface {
	Resolve(ref string) string
	Download(ctx context.Context, ref, dir string) (string, error)
}

// runPreview decodes a selection off the event loop
func runPreview(ctx context.Context, job *workflow.PreviewJob) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return previewDoneMsg{result: job.Run(ctx)}
	}
}

// runAttempt performs one submission off the event loop
func runAttempt(attempt *workflow.Attempt) tea.Cmd {
	return func() tea.Msg {
		return settledMsg{outcome: attempt.Run()}
	}
}

// waitForDrag blocks on the next event from a drop zone
func waitForDrag(events <-chan *workflow.DragEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return dropClosedMsg{}
		}
		return dragMsg{event: ev}
	}
}

func downloadSolution(ctx context.Context, d Downloader, ref, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := d.Download(ctx, ref, dir)
		return downloadDoneMsg{path: path, err: err}
	}
}
