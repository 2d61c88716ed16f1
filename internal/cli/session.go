package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yildizm/MazeSolve/internal/config"
	"github.com/yildizm/MazeSolve/internal/formatter"
	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/preview"
	"github.com/yildizm/MazeSolve/internal/solver"
	"github.com/yildizm/MazeSolve/internal/ui"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// session holds what every command needs to run the upload workflow
type session struct {
	cfg        *config.Config
	log        *logger.Logger
	client     *solver.Client
	controller *workflow.Controller
	recorder   *workflow.Recorder
}

// loadConfig loads the effective configuration and applies global flags
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader().WithWarnings(func(format string, args ...interface{}) {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		}
	})

	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if endpointURL != "" {
		cfg.Server.Endpoint = endpointURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --endpoint: %w", err)
		}
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	return cfg, nil
}

// solverConfig maps the server section onto the client settings
func solverConfig(cfg *config.Config) *solver.Config {
	return &solver.Config{
		BaseURL:   cfg.Server.Endpoint,
		SolvePath: cfg.Server.SolvePath,
		FieldName: cfg.Server.FieldName,
		Timeout:   cfg.Server.Timeout,
		UserAgent: cfg.Server.UserAgent,
	}
}

// newSession wires the client and controller. Log lines go to logOut.
func newSession(cfg *config.Config, logOut io.Writer) (*session, error) {
	log := logger.NewWithWriter("mazesolve", logOut, cfg.Output.Verbose)

	client, err := solver.New(solverConfig(cfg), log)
	if err != nil {
		return nil, err
	}

	controller := workflow.NewController(workflow.Options{
		Solver:    client,
		Previewer: preview.NewRenderer(preview.Options{ThumbnailWidth: cfg.Preview.ThumbnailWidth}),
		Logger:    log,
	})

	return &session{
		cfg:        cfg,
		log:        log,
		client:     client,
		controller: controller,
		recorder:   &workflow.Recorder{},
	}, nil
}

// selectPath routes a path through the picker change path and waits for
// its preview
func (s *session) selectPath(ctx context.Context, path string) {
	if job := s.controller.PickerChange([]string{path}); job != nil {
		s.controller.PreviewDone(job.Run(ctx))
	}
}

// handleDrag applies a drag event and waits for any preview it started
func (s *session) handleDrag(ctx context.Context, ev *workflow.DragEvent) {
	if job := s.controller.HandleDrag(ev); job != nil {
		s.controller.PreviewDone(job.Run(ctx))
	}
}

// submit solves the current selection if it is ready. Selections rejected
// earlier keep their own status and are not submitted.
func (s *session) submit(ctx context.Context) {
	if s.controller.State() != workflow.StatePreviewReady {
		return
	}
	attempt, err := s.controller.Submit(ctx)
	if err != nil {
		return
	}
	out := attempt.Run()
	if s.controller.Settle(out) {
		s.recorder.Record(out)
	}
}

// save downloads the solved animation into dir
func (s *session) save(ctx context.Context, dir string) error {
	v := s.controller.View()
	if !v.DownloadVisible {
		return nil
	}
	path, err := s.client.Download(ctx, v.DownloadRef, dir)
	if err != nil {
		return err
	}
	s.recorder.Saved(path)
	return nil
}

func (s *session) report() *workflow.Report {
	return s.controller.Report(s.client.Resolve, s.recorder)
}

// outputFormat is the --output flag or the configured default
func outputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	return cfg.Output.DefaultFormat
}

// colorEnabled resolves --no-color, the color mode and NO_COLOR
func colorEnabled(cfg *config.Config) bool {
	if noColor {
		return false
	}
	switch cfg.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}

func formatterOptions(cfg *config.Config, thumbnail bool) formatter.Options {
	return formatter.Options{
		Color:     colorEnabled(cfg),
		Emoji:     !isEmojiDisabled(),
		Thumbnail: thumbnail && cfg.Preview.Enabled,
	}
}

// downloadDir is the flag value or the configured directory
func downloadDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return config.ExpandPath(flag)
	}
	return config.ExpandPath(cfg.Output.DownloadDir)
}
