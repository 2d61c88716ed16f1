package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/preview"
	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
)

// Status messages
const (
	MsgPreviewReady = `Image loaded successfully. Select "Solve Maze" to begin.`
	MsgProcessing   = "Processing maze..."
	MsgSolved       = "Maze solved successfully!"
	ErrorPrefix     = "Error: "
)

// Solver submits a candidate to the upload endpoint
type Solver interface {
	Solve(ctx context.Context, candidate *upload.Candidate, requestID string) (*solver.Response, error)
}

// Previewer decodes a candidate for display
type Previewer interface {
	Render(ctx context.Context, candidate *upload.Candidate) (*preview.Image, error)
}

// Opener turns a picked path into a candidate
type Opener func(path string) (*upload.Candidate, error)

// Options configures a Controller
type Options struct {
	Solver    Solver
	Previewer Previewer
	Open      Opener
	Logger    *logger.Logger
}

// Controller owns the workflow state. It is not safe for concurrent use: all
// methods must be called from one event loop. Long-running work is handed out
// as PreviewJob and Attempt values whose results come back through
// PreviewDone and Settle.
type Controller struct {
	view      View
	candidate *upload.Candidate
	selection uint64
	attempt   *Attempt
	lastErr   error

	// decodeErr is set once the current candidate's preview failed; such a
	// candidate can never be submitted
	decodeErr error

	solver    Solver
	previewer Previewer
	open      Opener
	log       *logger.Logger
}

// NewController creates a controller in the Idle state
func NewController(opts Options) *Controller {
	if opts.Open == nil {
		opts.Open = upload.FromPath
	}
	if opts.Previewer == nil {
		opts.Previewer = preview.NewRenderer(preview.Options{})
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	return &Controller{
		view:      View{State: StateIdle},
		solver:    opts.Solver,
		previewer: opts.Previewer,
		open:      opts.Open,
		log:       opts.Logger.WithComponent("workflow"),
	}
}

// View returns a snapshot of the display state
func (c *Controller) View() View {
	v := c.view
	if v.Status.Stats != nil {
		v.Status.Stats = append([]string(nil), v.Status.Stats...)
	}
	return v
}

// State returns the current state
func (c *Controller) State() State {
	return c.view.State
}

// Candidate returns the current candidate, if any
func (c *Controller) Candidate() *upload.Candidate {
	return c.candidate
}

// Err returns the error behind the last Failed state, or the last rejected
// selection
func (c *Controller) Err() error {
	return c.lastErr
}

// InFlight reports whether a submission is outstanding
func (c *Controller) InFlight() bool {
	return c.attempt != nil
}

// PreviewJob decodes one selection off the event loop
type PreviewJob struct {
	seq       uint64
	candidate *upload.Candidate
	previewer Previewer
}

// PreviewResult is delivered back to the controller via PreviewDone
type PreviewResult struct {
	seq   uint64
	Image *preview.Image
	Err   error
}

// Run decodes the candidate. It does not touch controller state.
func (j *PreviewJob) Run(ctx context.Context) PreviewResult {
	img, err := j.previewer.Render(ctx, j.candidate)
	return PreviewResult{seq: j.seq, Image: img, Err: err}
}

// Select makes candidate the current selection. Transient display state is
// reset before validation so nothing stale survives into the new preview.
// A job is returned only when the candidate passed validation.
func (c *Controller) Select(candidate *upload.Candidate) *PreviewJob {
	c.supersede()

	c.selection++
	c.candidate = candidate
	c.lastErr = nil
	c.decodeErr = nil
	c.view.resetTransient()
	c.view.State = StateIdle
	c.view.CandidateName = ""
	if candidate != nil {
		c.view.CandidateName = candidate.Name
	}

	result := upload.Validate(candidate)
	if !result.OK {
		c.reject(result.Err)
		return nil
	}

	c.log.DebugWithFields("candidate accepted", []logger.Field{
		logger.Path(candidate.Name), logger.F("type", candidate.Type), logger.Bytes(candidate.Size),
	})

	return &PreviewJob{seq: c.selection, candidate: candidate, previewer: c.previewer}
}

// PreviewDone applies a decode result. Results for replaced selections are
// dropped.
func (c *Controller) PreviewDone(result PreviewResult) {
	if result.seq != c.selection {
		c.log.Debug("dropping preview for replaced selection")
		return
	}

	if result.Err != nil {
		if upload.KindOf(result.Err) == "" {
			// cancelled decode
			return
		}
		c.decodeErr = result.Err
		c.view.PreviewVisible = false
		c.view.Preview = nil
		if c.view.State == StateIdle || c.view.State == StatePreviewReady {
			c.reject(result.Err)
		}
		return
	}

	c.view.Preview = result.Image
	c.view.PreviewVisible = true

	// A submit may already have started from this selection; keep its status
	if c.view.State == StateIdle {
		c.view.State = StatePreviewReady
		c.view.Status = Status{Kind: StatusInfo, Text: MsgPreviewReady}
	}
}

// reject shows a selection-time failure and returns to Idle
func (c *Controller) reject(err error) {
	c.lastErr = err
	c.view.State = StateIdle
	c.view.Status = Status{Kind: StatusError, Text: upload.MessageOf(err)}
	c.log.DebugWithFields("candidate rejected", []logger.Field{logger.Error(err)})
}

// PickerChange handles a file-picker change: the first path wins
func (c *Controller) PickerChange(paths []string) *PreviewJob {
	if len(paths) == 0 {
		return c.Select(nil)
	}

	candidate, err := c.open(paths[0])
	if err != nil {
		c.Select(nil)
		c.reject(upload.NewErrorWithCause(upload.KindUnsupportedType,
			fmt.Sprintf("Could not read %s", filepath.Base(paths[0])), err))
		c.log.WarnWithFields("failed to open picked file", []logger.Field{logger.Path(paths[0]), logger.Error(err)})
		return nil
	}

	return c.Select(candidate)
}

// supersede cancels any in-flight attempt so its settlement is ignored
func (c *Controller) supersede() {
	if c.attempt == nil {
		return
	}
	c.log.DebugWithFields("superseding attempt", []logger.Field{logger.Attempt(c.attempt.ID)})
	c.attempt.cancel()
	c.attempt = nil
	c.view.Processing = false
}

// SelectAndWait selects the candidate and runs the preview inline
func (c *Controller) SelectAndWait(ctx context.Context, candidate *upload.Candidate) View {
	if job := c.Select(candidate); job != nil {
		c.PreviewDone(job.Run(ctx))
	}
	return c.View()
}
