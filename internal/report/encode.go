package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/qgate/internal/check"
	"github.com/thoreinstein/qgate/internal/errors"
)

// OutputFormat names an output encoding.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTOML OutputFormat = "toml"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownFormat, "%q (valid: %s)", s, strings.Join(Formats(), ", "))
}

// Document is the machine-readable form of a run.
type Document struct {
	RunID     string         `json:"run_id,omitempty" yaml:"run_id,omitempty" toml:"run_id,omitempty"`
	AllPassed bool           `json:"all_passed" yaml:"all_passed" toml:"all_passed"`
	ExitCode  int            `json:"exit_code" yaml:"exit_code" toml:"exit_code"`
	Failed    []string       `json:"failed" yaml:"failed" toml:"failed"`
	Results   []check.Result `json:"results" yaml:"results" toml:"results"`
}

// NewDocument builds a Document from ordered results.
func NewDocument(runID string, results []check.Result) Document {
	doc := Document{
		RunID:     runID,
		AllPassed: AllPassed(results),
		ExitCode:  ExitCode(results),
		Failed:    Failed(results),
		Results:   make([]check.Result, len(results)),
	}
	if doc.Failed == nil {
		doc.Failed = []string{}
	}
	for i, r := range results {
		if r.Errors == nil {
			r.Errors = []string{}
		}
		doc.Results[i] = r
	}
	return doc
}

// Encode writes results to w in the given format. FormatText writes the
// output of Format followed by a newline.
func Encode(w io.Writer, format OutputFormat, runID string, results []check.Result) error {
	if format == FormatText || format == "" {
		_, err := io.WriteString(w, Format(results)+"\n")
		return errors.Wrap(err, "writing report")
	}

	doc := NewDocument(runID, results)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "encoding JSON")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		return errors.Wrap(enc.Close(), "encoding YAML")
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(doc), "encoding TOML")
	}
	return errors.Wrapf(errors.ErrUnknownFormat, "%q", format)
}
