package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yildizm/MazeSolve/internal/config"
	"github.com/yildizm/MazeSolve/internal/formatter"
	"github.com/yildizm/MazeSolve/internal/ui"
	"github.com/yildizm/MazeSolve/internal/watch"
)

var (
	tuiDropDir     string
	tuiPickerDir   string
	tuiLogFile     string
	tuiDownloadDir string
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [image]",
		Short: "Pick, drop and solve mazes interactively",
		Long: `Open the interactive maze solver.

Drag an image onto the terminal window (or paste its path) to select it,
browse the picker with tab, and press ctrl+s to solve. With --drop-dir,
files copied into that directory are dropped onto the window too.

Examples:
  mazesolve tui
  mazesolve tui maze.png
  mazesolve tui --drop-dir ~/Downloads/mazes`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiDropDir, "drop-dir", "", "watch this directory as a drop region (default: drop.directory)")
	cmd.Flags().StringVar(&tuiPickerDir, "dir", ".", "directory listed in the file picker")
	cmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the UI is open")
	cmd.Flags().StringVar(&tuiDownloadDir, "download-dir", "", "directory for downloaded animations (default: output.download_dir)")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen
	logOut := io.Discard
	if tuiLogFile != "" {
		file, err := os.OpenFile(filepath.Clean(tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = file.Close() }()
		logOut = file
	}

	s, err := newSession(cfg, logOut)
	if err != nil {
		return err
	}

	theme, ok := ui.ThemeByName(cfg.Output.Theme)
	if !ok {
		theme = ui.DefaultTheme
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := ui.Options{
		Controller:  s.controller,
		Downloader:  s.client,
		DownloadDir: downloadDir(tuiDownloadDir, cfg),
		PickerDir:   tuiPickerDir,
		Theme:       theme,
		Color:       colorEnabled(cfg),
		Emoji:       !isEmojiDisabled(),
		Logger:      s.log,
	}
	if len(args) == 1 {
		opts.InitialPath = args[0]
	}

	dropDir := tuiDropDir
	if dropDir == "" {
		dropDir = cfg.Drop.Directory
	}
	var zoneErr chan error
	if dropDir != "" {
		zone, err := watch.New(watch.Options{
			Dir:    config.ExpandPath(dropDir),
			Settle: cfg.Drop.Settle,
			Logger: s.log,
		})
		if err != nil {
			return err
		}
		zoneErr = make(chan error, 1)
		go func() { zoneErr <- zone.Run(ctx) }()
		opts.DropEvents = zone.Events()
		opts.DropDir = zone.Dir()
	}

	report, err := ui.Run(ctx, opts)
	cancel()
	if zoneErr != nil {
		if zerr := <-zoneErr; zerr != nil {
			s.log.Warn("drop directory stopped: %v", zerr)
		}
	}
	if err != nil {
		return err
	}

	// Leave a record of the last result on the normal screen
	if report != nil && report.State.Settled() {
		stream, err := formatter.NewStream(cmd.OutOrStdout(), outputFormat(cfg), formatterOptions(cfg, false))
		if err != nil {
			return err
		}
		return stream.Write(report)
	}
	return nil
}
