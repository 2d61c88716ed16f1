package workflow

import (
	"github.com/yildizm/MazeSolve/internal/preview"
)

// State is the workflow's position in the selection/submission cycle
type State int

const (
	StateIdle State = iota
	StatePreviewReady
	StateSubmitting
	StateSuccess
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StatePreviewReady: "preview_ready",
	StateSubmitting:   "submitting",
	StateSuccess:      "success",
	StateFailed:       "failed",
}

// String returns the state name
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Settled reports whether a submission has finished
func (s State) Settled() bool {
	return s == StateSuccess || s == StateFailed
}

// StatusKind selects how a status message is presented
type StatusKind string

const (
	StatusNone       StatusKind = ""
	StatusInfo       StatusKind = "info"
	StatusProcessing StatusKind = "processing"
	StatusSuccess    StatusKind = "success"
	StatusError      StatusKind = "error"
)

// Status is the single message line plus optional solve statistics
type Status struct {
	Kind  StatusKind `json:"kind"`
	Text  string     `json:"text"`
	Stats []string   `json:"stats,omitempty"`
}

// View is everything a surface needs to draw. Surfaces only read it; the
// Controller is the only writer.
type View struct {
	State  State  `json:"state"`
	Status Status `json:"status"`

	CandidateName string `json:"candidate,omitempty"`

	PreviewVisible bool           `json:"preview_visible"`
	Preview        *preview.Image `json:"preview,omitempty"`

	AnimationVisible bool   `json:"animation_visible"`
	AnimationRef     string `json:"animation_ref,omitempty"`

	DownloadVisible bool   `json:"download_visible"`
	DownloadRef     string `json:"download_ref,omitempty"`

	Processing    bool `json:"processing"`
	DropHighlight bool `json:"drop_highlight"`
}

// resetTransient hides everything a new selection invalidates
func (v *View) resetTransient() {
	v.Status = Status{}
	v.PreviewVisible = false
	v.Preview = nil
	v.clearResult()
}

// clearResult hides the animation and download control
func (v *View) clearResult() {
	v.AnimationVisible = false
	v.AnimationRef = ""
	v.DownloadVisible = false
	v.DownloadRef = ""
	v.Status.Stats = nil
}
