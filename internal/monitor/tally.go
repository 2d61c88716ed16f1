package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/MazeSolve/internal/upload"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// Tally counts the outcomes of every report observed in a session
type Tally struct {
	started   time.Time
	reports   Counter
	solved    Counter
	failed    Counter
	rejected  Counter
	uploaded  Counter
	roundTrip *Timer
}

// Summary is a point-in-time view of a Tally
type Summary struct {
	Reports       int64         `json:"reports"`
	Solved        int64         `json:"solved"`
	Failed        int64         `json:"failed"`
	Rejected      int64         `json:"rejected"`
	UploadedBytes int64         `json:"uploaded_bytes"`
	MinRoundTrip  time.Duration `json:"min_round_trip_ns"`
	AvgRoundTrip  time.Duration `json:"avg_round_trip_ns"`
	MaxRoundTrip  time.Duration `json:"max_round_trip_ns"`
	Uptime        time.Duration `json:"uptime_ns"`
}

// NewTally starts a tally
func NewTally() *Tally {
	return &Tally{started: time.Now(), roundTrip: NewTimer()}
}

// Observe records one report. Rejections are selections that never reached
// the server; failures are attempts that did.
func (t *Tally) Observe(report *workflow.Report) {
	t.reports.Inc()

	switch {
	case report.State == workflow.StateSuccess:
		t.solved.Inc()
	case isClientSide(report.ErrorKind):
		t.rejected.Inc()
		return
	case report.State == workflow.StateFailed:
		t.failed.Inc()
	default:
		return
	}

	t.uploaded.Add(report.Size)
	if report.Elapsed > 0 {
		t.roundTrip.Record(report.Elapsed)
	}
}

// Summary returns the current totals
func (t *Tally) Summary() Summary {
	return Summary{
		Reports:       t.reports.Get(),
		Solved:        t.solved.Get(),
		Failed:        t.failed.Get(),
		Rejected:      t.rejected.Get(),
		UploadedBytes: t.uploaded.Get(),
		MinRoundTrip:  t.roundTrip.MinTime(),
		AvgRoundTrip:  t.roundTrip.AvgTime(),
		MaxRoundTrip:  t.roundTrip.MaxTime(),
		Uptime:        time.Since(t.started),
	}
}

// String renders the summary as one line
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d dropped: %d solved, %d failed, %d rejected", s.Reports, s.Solved, s.Failed, s.Rejected)
	if s.AvgRoundTrip > 0 {
		fmt.Fprintf(&b, "; round trip min %s avg %s max %s",
			s.MinRoundTrip.Round(time.Millisecond),
			s.AvgRoundTrip.Round(time.Millisecond),
			s.MaxRoundTrip.Round(time.Millisecond))
	}
	return b.String()
}

func isClientSide(kind upload.ErrorKind) bool {
	switch kind {
	case upload.KindNoFileSelected, upload.KindUnsupportedType, upload.KindFileTooLarge:
		return true
	}
	return false
}
