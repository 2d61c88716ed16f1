package workflow

import (
	"time"

	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/upload"
)

// Report is a serializable summary of one selection and its last attempt
type Report struct {
	File      string `json:"file"`
	MediaType string `json:"media_type,omitempty"`
	Size      int64  `json:"size"`

	State  State  `json:"state"`
	Status string `json:"status"`

	PreviewFormat     string `json:"preview_format,omitempty"`
	PreviewDimensions string `json:"preview_dimensions,omitempty"`

	AnimationURL string        `json:"animation_url,omitempty"`
	DownloadURL  string        `json:"download_url,omitempty"`
	SavedTo      string        `json:"saved_to,omitempty"`
	Stats        *solver.Stats `json:"stats,omitempty"`
	StatsLines   []string      `json:"-"`

	ErrorKind upload.ErrorKind `json:"error_kind,omitempty"`
	Elapsed   time.Duration    `json:"elapsed_ns,omitempty"`

	Thumbnail []string `json:"-"`
}

// Failed reports whether the report describes a failure
func (r *Report) Failed() bool {
	return r.ErrorKind != ""
}

// Recorder keeps the last settled outcome alongside the controller so a
// report can carry the raw stats and timing
type Recorder struct {
	last    *Outcome
	savedTo string
}

// Record remembers an outcome
func (r *Recorder) Record(out Outcome) {
	r.last = &out
	r.savedTo = ""
}

// Saved notes where the last outcome's animation was downloaded to
func (r *Recorder) Saved(path string) {
	r.savedTo = path
}

// Report builds a report from the controller's current view. resolve turns
// server-relative references into absolute URLs; nil keeps them as-is.
func (c *Controller) Report(resolve func(string) string, rec *Recorder) *Report {
	if resolve == nil {
		resolve = func(ref string) string { return ref }
	}

	v := c.View()
	report := &Report{
		File:       v.CandidateName,
		State:      v.State,
		Status:     v.Status.Text,
		StatsLines: v.Status.Stats,
		ErrorKind:  upload.KindOf(c.lastErr),
	}

	if c.candidate != nil {
		report.MediaType = c.candidate.Type
		report.Size = c.candidate.Size
	}
	if v.PreviewVisible && v.Preview != nil {
		report.PreviewFormat = v.Preview.Format
		report.PreviewDimensions = v.Preview.Dimensions()
		report.Thumbnail = v.Preview.Thumbnail
	}
	if v.AnimationVisible {
		report.AnimationURL = resolve(v.AnimationRef)
	}
	if v.DownloadVisible {
		report.DownloadURL = resolve(v.DownloadRef)
		if rec != nil {
			report.SavedTo = rec.savedTo
		}
	}
	// Timing and stats belong to the settled attempt of this selection only
	if rec != nil && rec.last != nil && v.State.Settled() &&
		rec.last.Attempt != nil && rec.last.Attempt.Candidate == c.candidate {
		report.Elapsed = rec.last.Elapsed
		if rec.last.Response != nil && v.State == StateSuccess {
			report.Stats = rec.last.Response.Stats
		}
	}

	return report
}
