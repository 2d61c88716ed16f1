package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/MazeSolve/internal/config"
	"github.com/yildizm/MazeSolve/internal/formatter"
	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/monitor"
	"github.com/yildizm/MazeSolve/internal/watch"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

var (
	watchAutoSolve   bool
	watchSave        bool
	watchDownloadDir string
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Solve maze images dropped into a directory",
		Long: `Treat a directory as a drop region. Every image copied or moved into it
is validated, previewed and, with --auto-solve, uploaded to the solver.
A report is printed for each dropped file. Press Ctrl+C to stop watching.

Without an argument the configured drop.directory is watched.

Examples:
  mazesolve watch ./incoming
  mazesolve watch --save --download-dir ./solved ./incoming
  mazesolve watch --auto-solve=false -o csv ./incoming`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&watchAutoSolve, "auto-solve", true, "submit every accepted drop (default: drop.auto_solve)")
	cmd.Flags().BoolVar(&watchSave, "save", false, "download each solution animation")
	cmd.Flags().StringVar(&watchDownloadDir, "download-dir", "", "directory for downloaded animations (default: output.download_dir)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("auto-solve") {
		watchAutoSolve = cfg.Drop.AutoSolve
	}

	dir := cfg.Drop.Directory
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given and drop.directory is not configured")
	}

	s, err := newSession(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	stream, err := formatter.NewStream(cmd.OutOrStdout(), outputFormat(cfg), formatterOptions(cfg, true))
	if err != nil {
		return err
	}

	zone, err := watch.New(watch.Options{
		Dir:    config.ExpandPath(dir),
		Settle: cfg.Drop.Settle,
		Logger: s.log,
	})
	if err != nil {
		return err
	}

	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching directory: %s\n", zone.Dir())
		fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop...\n\n")
	}

	return runWatchLoop(cmd.Context(), s, zone, stream, downloadDir(watchDownloadDir, cfg))
}

// runWatchLoop handles drop events until interrupted or the zone stops
func runWatchLoop(parent context.Context, s *session, zone *watch.DropZone, stream *formatter.Stream, saveDir string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	zoneErr := make(chan error, 1)
	go func() { zoneErr <- zone.Run(ctx) }()

	tally := monitor.NewTally()
	defer func() {
		s.log.Info("watch stopped after %s", tally.Summary().Uptime.Round(time.Second))
		fmt.Fprintln(os.Stderr, tally.Summary().String())
	}()

	for {
		select {
		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			cancel()
			return <-zoneErr

		case ev, ok := <-zone.Events():
			if !ok {
				return <-zoneErr
			}
			report, err := handleWatchEvent(ctx, s, ev, stream, saveDir)
			if err != nil {
				cancel()
				<-zoneErr
				return err
			}
			if report != nil {
				tally.Observe(report)
			}
		}
	}
}

// handleWatchEvent applies one drag event and writes a report for each
// completed drop
func handleWatchEvent(ctx context.Context, s *session, ev *workflow.DragEvent, stream *formatter.Stream, saveDir string) (*workflow.Report, error) {
	s.handleDrag(ctx, ev)
	if ev.Kind != workflow.Drop {
		return nil, nil
	}

	if watchAutoSolve {
		s.submit(ctx)
		if watchSave {
			if err := s.save(ctx, saveDir); err != nil {
				s.log.WarnWithFields("failed to save animation", []logger.Field{logger.Error(err)})
			}
		}
	}

	report := s.report()
	if err := stream.Write(report); err != nil {
		return nil, err
	}
	return report, nil
}
