package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
)

// Attempt is one submission round trip
type Attempt struct {
	ID        string
	Candidate *upload.Candidate
	Started   time.Time

	ctx    context.Context
	cancel context.CancelFunc
	solver Solver
}

// Outcome is the settled result of an Attempt
type Outcome struct {
	Attempt  *Attempt
	Response *solver.Response
	Err      error
	Elapsed  time.Duration
}

// Run performs the network round trip. It does not touch controller state
// and is safe to call from any goroutine.
func (a *Attempt) Run() Outcome {
	resp, err := a.solver.Solve(a.ctx, a.Candidate, a.ID)
	return Outcome{
		Attempt:  a,
		Response: resp,
		Err:      err,
		Elapsed:  time.Since(a.Started),
	}
}

// Cancel aborts the round trip
func (a *Attempt) Cancel() {
	a.cancel()
}

// Submit re-validates the current candidate and, on pass, enters Submitting
// and returns the attempt to run. A candidate whose preview failed to decode
// is refused with the decode error. An outstanding attempt is cancelled and
// superseded: only the most recently submitted attempt can settle.
func (c *Controller) Submit(ctx context.Context) (*Attempt, error) {
	result := upload.Validate(c.candidate)
	if !result.OK {
		c.supersede()
		c.fail(result.Err)
		return nil, result.Err
	}
	if c.decodeErr != nil {
		c.supersede()
		c.fail(c.decodeErr)
		return nil, c.decodeErr
	}
	if c.solver == nil {
		err := upload.NewError(upload.KindNetworkOrServer, solver.GenericFailure)
		c.fail(err)
		return nil, err
	}

	c.supersede()

	attemptCtx, cancel := context.WithCancel(ctx)
	attempt := &Attempt{
		ID:        uuid.NewString(),
		Candidate: c.candidate,
		Started:   time.Now(),
		ctx:       attemptCtx,
		cancel:    cancel,
		solver:    c.solver,
	}
	c.attempt = attempt
	c.lastErr = nil

	c.view.State = StateSubmitting
	c.view.clearResult()
	c.view.Status = Status{Kind: StatusProcessing, Text: MsgProcessing}
	c.view.Processing = true

	c.log.InfoWithFields("submitting", []logger.Field{
		logger.Attempt(attempt.ID), logger.Path(attempt.Candidate.Name), logger.Bytes(attempt.Candidate.Size),
	})

	return attempt, nil
}

// Settle applies an outcome and reports whether it was the live attempt's.
// Outcomes of superseded attempts are dropped. The processing indicator is
// removed on every path.
func (c *Controller) Settle(out Outcome) bool {
	if out.Attempt == nil || out.Attempt != c.attempt {
		if out.Attempt != nil {
			c.log.DebugWithFields("dropping superseded outcome", []logger.Field{logger.Attempt(out.Attempt.ID)})
		}
		return false
	}

	defer func() {
		c.view.Processing = false
		c.attempt = nil
		out.Attempt.cancel()
	}()

	if out.Err != nil {
		// Cancellation of the live attempt (parent context, deadline) is a
		// transport failure from the user's point of view
		if upload.KindOf(out.Err) == "" {
			out.Err = upload.NewErrorWithCause(upload.KindNetworkOrServer, solver.GenericFailure, out.Err)
		}
		c.log.WarnWithFields("solve failed", []logger.Field{
			logger.Attempt(out.Attempt.ID), logger.Error(out.Err), logger.Duration(out.Elapsed),
		})
		c.fail(out.Err)
		return true
	}

	if out.Response == nil {
		c.fail(upload.NewError(upload.KindApplication, solver.GenericFailure))
		return true
	}

	c.log.InfoWithFields("solved", []logger.Field{
		logger.Attempt(out.Attempt.ID), logger.F("gif", out.Response.GifURL), logger.Duration(out.Elapsed),
	})
	c.succeed(out.Response)
	return true
}

// SubmitAndWait submits and settles inline, returning the failure if any
func (c *Controller) SubmitAndWait(ctx context.Context) error {
	attempt, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	c.Settle(attempt.Run())
	return c.lastErr
}
