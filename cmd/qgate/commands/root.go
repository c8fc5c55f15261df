// Package commands implements the CLI commands for qgate.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/qgate/cmd"
	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// logFileHandle is the open --log-file, closed by closeLogFile.
var logFileHandle *os.File

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig and configLoadErr hold the result of loading configuration.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress progress lines and non-error logs")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", "also write logs to file in JSON format")
	pf.StringVar(&configPath, "config", "", "config file (default: ./.qgate.yaml, then $XDG_CONFIG_HOME/qgate/config.yaml)")
	addRunFlags(pf)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("qgate version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "qgate",
	Short: "Run type checking, linting, and tests as one quality gate",
	Long: `qgate runs a project's type checker, linter, and test suite in that
order, extracts the actionable error lines from each tool's output, suggests
a fix, and prints a single validation report.

The exit status is 0 when every check passed or was skipped, 1 when any
check failed, and 2 when qgate itself could not run.

Without a subcommand, qgate behaves like 'qgate run'.`,
	Example: `  # Validate the current project
  qgate

  # Machine-readable report for CI
  qgate run --format json --output qgate-report.json

  # Re-run on every save
  qgate watch

  See Also: qgate init, qgate config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLogFile()
	},
	RunE: runChecks,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pick one of -q or -v")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		// Flags win; QGATE_DEBUG only applies when no -v was given.
		if v == 0 {
			switch os.Getenv("QGATE_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if err := closeLogFile(); err != nil {
		return err
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		logFileHandle = f
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	// The root holds the context of the current Execute; a subcommand keeps
	// whatever context it was given on an earlier Execute.
	ctx := cmd.Root().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// closeLogFile closes the --log-file opened by setupLogging, if any.
func closeLogFile() error {
	if logFileHandle == nil {
		return nil
	}
	f := logFileHandle
	logFileHandle = nil
	if err := f.Close(); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "closing log file"), "")
	}
	return nil
}

// effectiveConfig returns the loaded configuration or a config error.
func effectiveConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if loadedConfig == nil {
		return config.Default(), nil
	}
	return loadedConfig, nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which kills any running check.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when RunE fails.
	if cerr := closeLogFile(); err == nil {
		err = cerr
	}
	return err
}

// PrintError writes err and its suggestion to w. Failed checks are already
// described by the report, so they print nothing.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errors.ErrChecksFailed) {
		return
	}

	label := "Error:"
	if logging.SupportsColor(w) {
		label = color.New(color.FgRed, color.Bold).Sprint(label)
	}
	fmt.Fprintf(w, "%s %v\n", label, err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
