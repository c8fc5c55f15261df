package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/qgate/internal/check"
	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/doctor"
	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/paths"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the qgate setup",
	Long: `Check that the config file loads, the work directory exists, and every
check's tool is installed and names a script package.json defines.

Output modes:
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Before the first run in a new project
  qgate doctor -v

  See Also: qgate init, qgate config`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// Sentinels for the doctor exit codes.
var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

func runDoctor(c *cobra.Command, _ []string) error {
	report := newDoctorRunner(c).Run()

	if err := outputDoctorReport(c.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func newDoctorRunner(c *cobra.Command) *doctor.Runner {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.Default()
	}
	workdir := cfg.Workdir
	if c.Flags().Changed("workdir") {
		workdir = workdirFlag
	}

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(config.FileUsed(), configLoadErr))
	runner.AddCheck(doctor.NewWorkdirCheck(workdir))

	if dir, err := paths.ResolveWorkdir(workdir); err == nil {
		workdir = dir
	}
	commands := []struct {
		kind check.Kind
		key  string
		argv []string
	}{
		{check.KindTypeCheck, "commands.typecheck", cfg.Commands.TypeCheck},
		{check.KindLint, "commands.lint", cfg.Commands.Lint},
		{check.KindTests, "commands.test", cfg.Commands.Test},
	}
	for _, cmd := range commands {
		runner.AddCheck(doctor.NewToolCheck(string(cmd.kind), cmd.key, cmd.argv))
		runner.AddCheck(doctor.NewScriptCheck(string(cmd.kind), workdir, cmd.argv))
	}
	return runner
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
		}
		return nil
	}
	if quiet {
		return nil
	}

	showAll := verbosity > 0
	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && result.Status >= doctor.SeverityWarning {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}
	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
