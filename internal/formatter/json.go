package formatter

import (
	"encoding/json"

	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *workflow.Report) ([]byte, error) {
	output := &JSONOutput{
		File: &FileOutput{
			Name:       report.File,
			MediaType:  report.MediaType,
			Size:       report.Size,
			Format:     report.PreviewFormat,
			Dimensions: report.PreviewDimensions,
		},
		State:  report.State.String(),
		Status: report.Status,
		Stats:  report.Stats,
	}

	if report.AnimationURL != "" {
		output.Solution = &SolutionOutput{
			AnimationURL: report.AnimationURL,
			DownloadURL:  report.DownloadURL,
			SavedTo:      report.SavedTo,
		}
	}
	if report.Failed() {
		output.Error = &ErrorOutput{Kind: string(report.ErrorKind), Message: report.Status}
	}
	if report.Elapsed > 0 {
		output.ElapsedMS = report.Elapsed.Milliseconds()
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput represents the JSON report structure
type JSONOutput struct {
	File      *FileOutput     `json:"file"`
	State     string          `json:"state"`
	Status    string          `json:"status"`
	Stats     *solver.Stats   `json:"stats,omitempty"`
	Solution  *SolutionOutput `json:"solution,omitempty"`
	Error     *ErrorOutput    `json:"error,omitempty"`
	ElapsedMS int64           `json:"elapsed_ms,omitempty"`
}

// FileOutput represents the selected file
type FileOutput struct {
	Name       string `json:"name"`
	MediaType  string `json:"media_type,omitempty"`
	Size       int64  `json:"size"`
	Format     string `json:"format,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
}

// SolutionOutput represents the solved animation
type SolutionOutput struct {
	AnimationURL string `json:"animation_url"`
	DownloadURL  string `json:"download_url"`
	SavedTo      string `json:"saved_to,omitempty"`
}

// ErrorOutput represents a failure
type ErrorOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
