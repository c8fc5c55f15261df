// Package report renders check results as the human-readable validation
// report and as machine-readable documents.
package report

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/qgate/internal/check"
)

const (
	ruleWidth = 60
	title     = "CODE VALIDATION REPORT"
)

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// Format renders results, in the order given, as the text report. It is a
// pure function: identical input yields byte-identical output.
func Format(results []check.Result) string {
	lines := []string{
		"\n" + heavyRule,
		title,
		heavyRule + "\n",
	}

	for _, r := range results {
		lines = append(lines, section(r)...)
	}

	lines = append(lines, lightRule)
	if AllPassed(results) {
		lines = append(lines, check.StatusPass.Marker()+" All checks passed!")
	} else {
		lines = append(lines, fmt.Sprintf("%s Validation failed: %s",
			check.StatusFail.Marker(), strings.Join(Failed(results), ", ")))
	}
	lines = append(lines, heavyRule+"\n")

	return strings.Join(lines, "\n")
}

func section(r check.Result) []string {
	marker := r.Status.Marker()
	switch r.Status {
	case check.StatusSkip:
		return []string{fmt.Sprintf("%s: %s Skipped (no tests found)", r.Name, marker)}
	case check.StatusPass:
		return []string{fmt.Sprintf("%s: %s Pass", r.Name, marker)}
	}

	lines := []string{fmt.Sprintf("%s: %s %d+ error(s)", r.Name, marker, len(r.Errors))}
	for _, e := range r.Errors {
		lines = append(lines, "  • "+e)
	}
	if r.Truncated() {
		lines = append(lines, fmt.Sprintf("  ... (showing first %d errors)", check.MaxErrors))
	}
	if r.Suggestion != "" {
		lines = append(lines, "\n  💡 Suggested fix: "+r.Suggestion)
	}
	return append(lines, "")
}

// AllPassed reports whether no result failed. SKIP counts as passing.
func AllPassed(results []check.Result) bool {
	for _, r := range results {
		if r.Failed() {
			return false
		}
	}
	return true
}

// Failed returns the names of failed checks in order.
func Failed(results []check.Result) []string {
	var names []string
	for _, r := range results {
		if r.Failed() {
			names = append(names, string(r.Name))
		}
	}
	return names
}

// ExitCode is 1 if any result failed and 0 otherwise.
func ExitCode(results []check.Result) int {
	if AllPassed(results) {
		return 0
	}
	return 1
}
