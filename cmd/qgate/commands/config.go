package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/qgate/internal/config"
	"github.com/thoreinstein/qgate/internal/editor"
	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/paths"
	"github.com/thoreinstein/qgate/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration qgate will use, after merging defaults, the
config file, and QGATE_* environment variables, in config-file YAML.

Command-line flags such as --timeout are not reflected here.`,
	Example: `  # Show effective settings
  qgate config

  # Which files are searched
  qgate config path

  # Edit the config file in $EDITOR
  qgate config edit

  See Also: qgate init`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List the config file search order",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR and validate it afterwards",
	Long: `Open the config file in use in $EDITOR (or $VISUAL, nano, vi). When no
config file exists yet, ./.qgate.yaml is created with the defaults first.
The file is loaded and validated after the editor exits.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigShow(c *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	out := c.OutOrStdout()
	source := config.FileUsed()
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}

func runConfigPath(c *cobra.Command, _ []string) error {
	out := c.OutOrStdout()
	used := config.FileUsed()

	candidates := []string{paths.ProjectConfigName, paths.GlobalConfigFile()}
	if configPath != "" {
		candidates = []string{configPath}
	}
	for _, p := range candidates {
		marker := " "
		if p == used {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, p)
	}
	return nil
}

func runConfigEdit(c *cobra.Command, _ []string) error {
	out := c.OutOrStdout()

	target := config.FileUsed()
	if configPath != "" {
		target = configPath
	}
	if target == "" {
		target = paths.ProjectConfigFile(".")
		data, err := config.Encode(config.Default())
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		if err := fileutil.AtomicWriteFile(target, data, 0o644); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "writing %s", target), "")
		}
		fmt.Fprintf(out, "Created %s\n", target)
	}

	streams := editor.Streams{In: c.InOrStdin(), Out: out, Err: c.ErrOrStderr()}
	if err := editor.Open(c.Context(), target, streams); err != nil {
		return errors.NewUserError(err, "Set $EDITOR to your preferred editor")
	}

	config.Init()
	if _, err := config.Load(target); err != nil {
		return errors.NewConfigError(err)
	}
	fmt.Fprintf(out, "%s is valid\n", target)
	return nil
}
