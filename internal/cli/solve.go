package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/MazeSolve/internal/formatter"
	"github.com/yildizm/MazeSolve/internal/upload"
)

var (
	solveSave        bool
	solveNoPreview   bool
	solveDownloadDir string
)

func newSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <image>",
		Short: "Upload one maze image and show the solution",
		Long: `Validate a maze image, preview it, upload it to the solver and report
the outcome. The command exits non-zero when the maze could not be solved.

Examples:
  mazesolve solve maze.png
  mazesolve solve --save --download-dir ./solutions maze.png
  mazesolve solve -o json maze.png`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	cmd.Flags().BoolVar(&solveSave, "save", false, "download the solution animation")
	cmd.Flags().BoolVar(&solveNoPreview, "no-preview", false, "omit the image thumbnail from text output")
	cmd.Flags().StringVar(&solveDownloadDir, "download-dir", "", "directory for downloaded animations (default: output.download_dir)")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := newSession(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	stream, err := formatter.NewStream(cmd.OutOrStdout(), outputFormat(cfg), formatterOptions(cfg, !solveNoPreview))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s.selectPath(ctx, args[0])
	s.submit(ctx)

	if solveSave {
		if err := s.save(ctx, downloadDir(solveDownloadDir, cfg)); err != nil {
			s.log.Warn("failed to save animation: %v", err)
		}
	}

	report := s.report()
	if err := stream.Write(report); err != nil {
		return err
	}

	if report.Failed() {
		return fmt.Errorf("maze not solved: %s", upload.MessageOf(s.controller.Err()))
	}
	return nil
}
