// Package check runs individual quality gates and normalizes their outcome.
package check

import "github.com/thoreinstein/qgate/internal/advisor"

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

// Marker returns the glyph shown next to the status in reports.
func (s Status) Marker() string {
	switch s {
	case StatusPass:
		return "✅"
	case StatusFail:
		return "❌"
	case StatusSkip:
		return "⏭️"
	default:
		return "?"
	}
}

// Kind names one of the fixed quality gates.
type Kind string

const (
	KindTypeCheck Kind = advisor.TypeCheck
	KindLint      Kind = advisor.Lint
	KindTests     Kind = advisor.Tests
)

// Kinds lists the gates in execution order.
func Kinds() []Kind {
	return []Kind{KindTypeCheck, KindLint, KindTests}
}

// MaxErrors is the number of actionable lines retained per result.
const MaxErrors = 10

// Result is the outcome of running one check. Runners build it once and
// never modify it afterwards.
type Result struct {
	// Name identifies the check.
	Name Kind `json:"name" yaml:"name" toml:"name"`

	// Status is PASS, FAIL, or SKIP.
	Status Status `json:"status" yaml:"status" toml:"status"`

	// ExitCode is the process exit code, or 1 for timeouts and launch failures.
	ExitCode int `json:"exit_code" yaml:"exit_code" toml:"exit_code"`

	// Errors holds at most MaxErrors actionable lines in order of appearance.
	// Always empty unless Status is FAIL.
	Errors []string `json:"errors" yaml:"errors" toml:"errors"`

	// Suggestion is a remediation hint, set only for FAIL.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty" toml:"suggestion,omitempty"`

	// Summary is supplementary context (the test tally line for Tests).
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`

	// Output is the raw stdout followed by stderr.
	Output string `json:"output" yaml:"output" toml:"output"`
}

// Failed reports whether the check failed.
func (r Result) Failed() bool {
	return r.Status == StatusFail
}

// Truncated reports whether Errors may have been cut at MaxErrors.
func (r Result) Truncated() bool {
	return len(r.Errors) >= MaxErrors
}
