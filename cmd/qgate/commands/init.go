package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/paths"
	"github.com/thoreinstein/qgate/pkg/fileutil"
)

var (
	initForce  bool
	initGlobal bool
)

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write the user config in the XDG config directory instead of ./.qgate.yaml")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a config file containing every setting at its default value.

By default the file is ./.qgate.yaml, which applies to this project only.
With --global it is written to the XDG config directory and applies to
every project without its own file.`,
	Example: `  # Project config
  qgate init

  # User-wide config
  qgate init --global

  # Start over
  qgate init --force

  See Also: qgate config`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(c *cobra.Command, _ []string) error {
	out := c.OutOrStdout()

	target := paths.ProjectConfigFile(".")
	if initGlobal {
		target = paths.GlobalConfigFile()
		if err := paths.EnsureDir(filepath.Dir(target), 0); err != nil {
			return errors.NewSystemError(err, "Check permissions on "+paths.ConfigDir())
		}
	}

	if _, err := os.Stat(target); err == nil && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", target)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	data, err := config.Encode(config.Default())
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteFile(target, data, 0o644); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", target), "")
	}

	fmt.Fprintf(out, "Created %s\n", target)
	return nil
}
