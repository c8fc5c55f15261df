package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/logging"
	"github.com/thoreinstein/qgate/internal/watch"
	"github.com/thoreinstein/qgate/pkg/fileutil"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the checks whenever files change",
	Long: `Run the checks once, then watch the work directory and run them again
after each burst of file changes settles.

Paths matching watch.ignore (node_modules, .git, dist, coverage, and
*.tsbuildinfo by default) are not watched. Runs never overlap, and changes
made while checks are running are dropped, so files the tools write
themselves never start another run. Press Ctrl-C to stop.`,
	Example: `  # Watch the current project
  qgate watch

  # Longer debounce for slow editors
  QGATE_WATCH_DEBOUNCE=2s qgate watch

  See Also: qgate run`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(c *cobra.Command, _ []string) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	ctx := c.Context()
	logger := logging.FromContext(ctx)

	shutdown, err := startTelemetry(ctx, s.cfg, c.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdown()

	w, err := watch.New(s.workdir, watchIgnore(s.cfg.Watch.Ignore), s.cfg.Watch.Debounce)
	if err != nil {
		return errors.NewSystemError(err, "Check inotify limits or the workdir")
	}
	defer w.Close()

	orch := newOrchestrator(c, s)
	progress := progressWriter(c, s.format)

	runOnce := func(ctx context.Context) {
		out := orch.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		if err := writeReport(c.OutOrStdout(), s, out); err != nil {
			logger.Error("writing report", "error", err)
		}
		fmt.Fprintf(progress, "👀 Watching %s for changes (Ctrl-C to stop)...\n", s.workdir)
	}

	runOnce(ctx)
	logger.Info("watching", "dir", s.workdir, "dirs", len(w.Dirs()), "debounce", s.cfg.Watch.Debounce)

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		fmt.Fprintf(progress, "\n🔄 %d file(s) changed, re-running checks...\n", len(changed))
		runOnce(ctx)
	})
}

// watchIgnore adds the report file and its temp files to ignore, so writing
// the report does not trigger another run.
func watchIgnore(ignore []string) []string {
	if outputFlag == "" {
		return ignore
	}
	return append(slices.Clone(ignore), filepath.Base(outputFlag), fileutil.TempPattern)
}
