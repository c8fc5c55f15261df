package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/qgate/internal/executor"
	"github.com/thoreinstein/qgate/internal/executor/mocks"
	"github.com/thoreinstein/qgate/internal/paths"
)

// isolate runs the test in an empty project directory with an empty global
// config directory, so no real config leaks in.
func isolate(t *testing.T) (projectDir, globalDir string) {
	t.Helper()
	projectDir = t.TempDir()
	globalDir = t.TempDir()
	t.Chdir(projectDir)
	t.Setenv(paths.EnvConfigDir, globalDir)
	t.Setenv("NO_COLOR", "1")
	t.Setenv("QGATE_DEBUG", "")
	t.Cleanup(viper.Reset)
	return projectDir, globalDir
}

// resetFlags restores every flag on c and its children to its default and
// clears Changed, since cobra keeps both across Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args under the test's context and returns what
// it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeContext(t, t.Context(), args...)
}

// executeContext is execute with an explicit context.
func executeContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		_ = closeLogFile()
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// fakeChecks installs a mock executor answering by script name ("typecheck",
// "lint", "test"). It returns a pointer to the timeout the executor was
// built with.
func fakeChecks(t *testing.T, results map[string]executor.Result) *time.Duration {
	t.Helper()
	m := mocks.NewMockExecutor(t)
	m.EXPECT().Run(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, cmd executor.Command, _ string) executor.Result {
			return results[strings.Join(cmd.Args, " ")]
		}).Maybe()

	var timeout time.Duration
	orig := newExecutor
	newExecutor = func(d time.Duration) executor.Executor {
		timeout = d
		return m
	}
	t.Cleanup(func() { newExecutor = orig })
	return &timeout
}
