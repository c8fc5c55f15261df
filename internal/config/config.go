package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/thoreinstein/qgate/internal/errors"
	"github.com/thoreinstein/qgate/internal/paths"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "QGATE"

// Defaults mirror the conventional pnpm script names.
var (
	DefaultTypeCheckCommand = []string{"pnpm", "typecheck"}
	DefaultLintCommand      = []string{"pnpm", "lint"}
	DefaultTestCommand      = []string{"pnpm", "test"}
	DefaultWatchIgnore      = []string{"node_modules", ".git", "dist", "coverage", "*.tsbuildinfo"}
)

const (
	DefaultTimeout        = 5 * time.Minute
	DefaultFormat         = "text"
	DefaultLintFixCommand = "pnpm lint:fix"
	DefaultDebounce       = 500 * time.Millisecond
)

// Config is the effective configuration.
type Config struct {
	Workdir        string        `mapstructure:"workdir"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Format         string        `mapstructure:"format"`
	Commands       Commands      `mapstructure:"commands"`
	LintFixCommand string        `mapstructure:"lint_fix_command"`
	Watch          Watch         `mapstructure:"watch"`
	Telemetry      Telemetry     `mapstructure:"telemetry"`
}

// Commands holds the argv for each check.
type Commands struct {
	TypeCheck []string `mapstructure:"typecheck"`
	Lint      []string `mapstructure:"lint"`
	Test      []string `mapstructure:"test"`
}

// Watch configures `qgate watch`.
type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Ignore   []string      `mapstructure:"ignore"`
}

// Telemetry toggles OpenTelemetry export.
type Telemetry struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workdir: ".",
		Timeout: DefaultTimeout,
		Format:  DefaultFormat,
		Commands: Commands{
			TypeCheck: clone(DefaultTypeCheckCommand),
			Lint:      clone(DefaultLintCommand),
			Test:      clone(DefaultTestCommand),
		},
		LintFixCommand: DefaultLintFixCommand,
		Watch: Watch{
			Debounce: DefaultDebounce,
			Ignore:   clone(DefaultWatchIgnore),
		},
	}
}

// Init resets Viper and installs defaults and environment bindings.
// Call it once at startup, before Load.
func Init() {
	viper.Reset()
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("workdir", d.Workdir)
	viper.SetDefault("timeout", d.Timeout)
	viper.SetDefault("format", d.Format)
	viper.SetDefault("commands.typecheck", d.Commands.TypeCheck)
	viper.SetDefault("commands.lint", d.Commands.Lint)
	viper.SetDefault("commands.test", d.Commands.Test)
	viper.SetDefault("lint_fix_command", d.LintFixCommand)
	viper.SetDefault("watch.debounce", d.Watch.Debounce)
	viper.SetDefault("watch.ignore", d.Watch.Ignore)
	viper.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
}

// Load reads the configuration. An explicit path must exist; otherwise the
// search list in the package doc applies and a missing file means defaults.
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	file, err := locate(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "reading config file %s", file), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		fieldsHook,
	))); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" when only defaults and
// environment were used.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

func locate(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrInvalidConfig)
		}
		return path, nil
	}

	for _, candidate := range []string{paths.ProjectConfigName, paths.GlobalConfigFile()} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// fieldsHook splits a single string into argv when the target is []string,
// so QGATE_COMMANDS_LINT="npm run lint" works.
func fieldsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	return strings.Fields(data.(string)), nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
