package commands

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/qgate/cmd"
	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/executor"
	"github.com/thoreinstein/qgate/internal/logging"
	"github.com/thoreinstein/qgate/internal/orchestrator"
	"github.com/thoreinstein/qgate/internal/paths"
	"github.com/thoreinstein/qgate/internal/report"
	"github.com/thoreinstein/qgate/internal/telemetry"
	"github.com/thoreinstein/qgate/pkg/fileutil"
)

// Flags shared by run and watch.
var (
	formatFlag  string
	workdirFlag string
	timeoutFlag time.Duration
	outputFlag  string
)

// newExecutor is swapped out in tests.
var newExecutor = func(timeout time.Duration) executor.Executor {
	return executor.New(timeout)
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&formatFlag, "format", "f", "", "report format: "+strings.Join(report.Formats(), ", ")+" (default from config)")
	fs.StringVarP(&workdirFlag, "workdir", "C", "", "directory to run the checks in (default from config)")
	fs.DurationVar(&timeoutFlag, "timeout", 0, "per-check timeout (default from config, 5m)")
	fs.StringVarP(&outputFlag, "output", "o", "", "write the report to this file instead of stdout")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all checks once and print the validation report",
	Long: `Run the TypeCheck, Lint, and Tests checks sequentially and print the
validation report.

Every check runs even when an earlier one fails. A check that exceeds the
timeout is killed together with its child processes and reported as failed.
A test run that finds no test files is reported as skipped and does not fail
the gate.`,
	Example: `  # Text report on stdout
  qgate run

  # Run in another directory with a shorter timeout
  qgate run -C ./packages/web --timeout 2m

  # YAML report written atomically to a file
  qgate run --format yaml --output report.yaml

  See Also: qgate watch, qgate config`,
	Args: cobra.NoArgs,
	RunE: runChecks,
}

// runSettings is the configuration after flag overrides.
type runSettings struct {
	cfg     *config.Config
	format  report.OutputFormat
	workdir string
}

func resolveSettings(c *cobra.Command) (*runSettings, error) {
	loaded, err := effectiveConfig()
	if err != nil {
		return nil, err
	}
	cfg := *loaded

	flags := c.Flags()
	if flags.Changed("format") {
		cfg.Format = formatFlag
	}
	if flags.Changed("workdir") {
		cfg.Workdir = workdirFlag
	}
	if flags.Changed("timeout") {
		if timeoutFlag <= 0 {
			return nil, errors.NewUserError(errors.Newf("invalid --timeout %s", timeoutFlag), "Use a positive duration such as 90s or 5m")
		}
		cfg.Timeout = timeoutFlag
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, errors.NewUserError(err, "Use --format "+strings.Join(report.Formats(), "|"))
	}
	dir, err := paths.ResolveWorkdir(cfg.Workdir)
	if err != nil {
		return nil, errors.NewUserError(err, "Check --workdir or the workdir config key")
	}

	return &runSettings{cfg: &cfg, format: format, workdir: dir}, nil
}

func runChecks(c *cobra.Command, _ []string) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	ctx := c.Context()
	shutdown, err := startTelemetry(ctx, s.cfg, c.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdown()

	out := newOrchestrator(c, s).Run(ctx)
	if err := writeReport(c.OutOrStdout(), s, out); err != nil {
		return err
	}
	return outcomeError(out)
}

func newOrchestrator(c *cobra.Command, s *runSettings) *orchestrator.Orchestrator {
	return orchestrator.New(s.cfg, s.workdir, newExecutor(s.cfg.Timeout),
		orchestrator.WithProgress(progressWriter(c, s.format)))
}

// progressWriter keeps stdout clean for machine-readable formats.
func progressWriter(c *cobra.Command, format report.OutputFormat) io.Writer {
	switch {
	case quiet:
		return io.Discard
	case format == report.FormatText && outputFlag == "":
		return c.OutOrStdout()
	default:
		return c.ErrOrStderr()
	}
}

func writeReport(stdout io.Writer, s *runSettings, out orchestrator.Outcome) error {
	encode := func(w io.Writer) error {
		return report.Encode(w, s.format, out.RunID, out.Results)
	}
	if outputFlag == "" {
		if err := encode(stdout); err != nil {
			return errors.NewSystemError(err, "")
		}
		return nil
	}
	if err := fileutil.AtomicWrite(outputFlag, 0o644, encode); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing report to %s", outputFlag), "Check that the --output directory exists")
	}
	return nil
}

func outcomeError(out orchestrator.Outcome) error {
	if out.AllPassed() {
		return nil
	}
	failed := report.Failed(out.Results)
	return errors.NewExitError(errors.Wrapf(errors.ErrChecksFailed, "%s", strings.Join(failed, ", ")), out.ExitCode())
}

// startTelemetry initializes OTel and returns a flush function that is
// safe to defer.
func startTelemetry(ctx context.Context, cfg *config.Config, w io.Writer) (func(), error) {
	enabled := cfg.Telemetry.Enabled || telemetry.EnabledFromEnv()
	if err := telemetry.Init(ctx, enabled, w, cmd.Version); err != nil {
		return nil, errors.NewSystemError(err, "Unset "+telemetry.EnvEnabled+" to run without telemetry")
	}
	return func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		telemetry.Shutdown(sctx)
		logging.FromContext(ctx).Debug("telemetry flushed", "enabled", enabled)
	}, nil
}
