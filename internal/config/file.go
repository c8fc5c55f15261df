package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/qgate/internal/errors"
)

// fileView is the on-disk shape of Config. Durations are written in
// time.ParseDuration syntax so the file round-trips through Load.
type fileView struct {
	Workdir        string        `yaml:"workdir"`
	Timeout        string        `yaml:"timeout"`
	Format         string        `yaml:"format"`
	Commands       commandsView  `yaml:"commands"`
	LintFixCommand string        `yaml:"lint_fix_command"`
	Watch          watchView     `yaml:"watch"`
	Telemetry      telemetryView `yaml:"telemetry"`
}

type commandsView struct {
	TypeCheck []string `yaml:"typecheck,flow"`
	Lint      []string `yaml:"lint,flow"`
	Test      []string `yaml:"test,flow"`
}

type watchView struct {
	Debounce string   `yaml:"debounce"`
	Ignore   []string `yaml:"ignore,flow"`
}

type telemetryView struct {
	Enabled bool `yaml:"enabled"`
}

// MarshalYAML renders cfg in config-file form.
func (c *Config) MarshalYAML() (any, error) {
	return fileView{
		Workdir: c.Workdir,
		Timeout: c.Timeout.String(),
		Format:  c.Format,
		Commands: commandsView{
			TypeCheck: c.Commands.TypeCheck,
			Lint:      c.Commands.Lint,
			Test:      c.Commands.Test,
		},
		LintFixCommand: c.LintFixCommand,
		Watch: watchView{
			Debounce: c.Watch.Debounce.String(),
			Ignore:   c.Watch.Ignore,
		},
		Telemetry: telemetryView{Enabled: c.Telemetry.Enabled},
	}, nil
}

// Encode returns cfg as YAML with two-space indentation.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encoding config")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding config")
	}
	return buf.Bytes(), nil
}
