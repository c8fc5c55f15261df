// Package advisor produces short remediation hints for failed checks.
package advisor

import (
	"fmt"
	"strings"
)

// Check names understood by the advisor.
const (
	TypeCheck = "TypeCheck"
	Lint      = "Lint"
	Tests     = "Tests"
)

// DefaultLintFixCommand is suggested when lint fails.
const DefaultLintFixCommand = "pnpm lint:fix"

// Advisor maps a check's error lines to at most one hint.
type Advisor struct {
	// LintFixCommand is the autofix command named in lint hints.
	LintFixCommand string
}

// New creates an Advisor. An empty lintFix selects DefaultLintFixCommand.
func New(lintFix string) *Advisor {
	if strings.TrimSpace(lintFix) == "" {
		lintFix = DefaultLintFixCommand
	}
	return &Advisor{LintFixCommand: lintFix}
}

type rule struct {
	match      func(text string) bool
	suggestion string
}

var typeCheckRules = []rule{
	{
		match:      containsAny("cannot find name", "not found"),
		suggestion: "Missing import detected. Review imports in affected files.",
	},
	{
		match: func(text string) bool {
			return strings.Contains(text, "type") && containsAny("mismatch", "not assignable")(text)
		},
		suggestion: "Type mismatch detected. Verify types match expected signatures.",
	},
	{
		match:      containsAny("unused"),
		suggestion: "Unused variables/imports detected. Remove or prefix with underscore if intentionally unused.",
	},
	{
		match:      always,
		suggestion: "Review TypeScript errors and fix type issues.",
	},
}

var testRules = []rule{
	{
		match:      containsAny("assertion", "expected"),
		suggestion: "Test assertions failing. Review test expectations vs actual behavior.",
	},
	{
		match:      always,
		suggestion: "Tests failing. Review test output and fix failing test cases.",
	},
}

// Suggest returns a hint for the named check, or "" when errs is empty or
// the check is unknown. The first matching rule wins.
func (a *Advisor) Suggest(check string, errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	text := strings.ToLower(strings.Join(errs, "\n"))

	switch check {
	case TypeCheck:
		return firstMatch(typeCheckRules, text)
	case Lint:
		return fmt.Sprintf("Run '%s' to automatically fix formatting issues.", a.LintFixCommand)
	case Tests:
		return firstMatch(testRules, text)
	}
	return ""
}

func firstMatch(rules []rule, text string) string {
	for _, r := range rules {
		if r.match(text) {
			return r.suggestion
		}
	}
	return ""
}

func containsAny(needles ...string) func(string) bool {
	return func(text string) bool {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return true
			}
		}
		return false
	}
}

func always(string) bool { return true }
