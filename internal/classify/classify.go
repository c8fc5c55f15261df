// Package classify extracts actionable error lines from the raw output of
// type-check, lint, and test tools.
//
// Every classifier is a best-effort, line-oriented heuristic: it splits its
// input on newlines, trims each line, and keeps the lines that match, in
// their original order and without deduplication.
package classify

import "strings"

// Glyphs printed by the supported tools.
const (
	// LintCross and LintTimes mark diagnostics in Biome output.
	LintCross = "✖"
	LintTimes = "×"

	// TestPointer marks failing tests in Vitest output.
	TestPointer = "❯"
)

// Classifier turns a tool's combined output into actionable lines.
type Classifier interface {
	Classify(output string) []string
}

// Func adapts a plain function to the Classifier interface.
type Func func(output string) []string

// Classify calls f.
func (f Func) Classify(output string) []string {
	return f(output)
}

var (
	// TypeCheck recognizes compiler-style "error TS<code>" diagnostics.
	TypeCheck Classifier = Func(typeCheckLines)

	// Lint recognizes linter diagnostics, excluding summary lines.
	Lint Classifier = Func(lintLines)

	// Test recognizes failing-test markers and assertion errors.
	Test Classifier = Func(testLines)
)

func typeCheckLines(output string) []string {
	return filterLines(output, func(line string) bool {
		// src/file.ts(10,5): error TS2304: Cannot find name 'foo'
		return strings.Contains(line, ": error TS") || strings.HasPrefix(line, "error TS")
	})
}

func lintLines(output string) []string {
	return filterLines(output, func(line string) bool {
		if line == "" {
			return false
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "error") &&
			!strings.Contains(line, LintCross) &&
			!strings.Contains(line, LintTimes) {
			return false
		}
		// "Found 3 errors." / "2 error(s)" are summaries, not diagnostics.
		return !strings.Contains(lower, "error(s)") && !strings.Contains(lower, "found")
	})
}

func testLines(output string) []string {
	return filterLines(output, func(line string) bool {
		return strings.Contains(line, TestPointer) ||
			strings.Contains(line, "FAIL") ||
			strings.Contains(line, "AssertionError")
	})
}

func filterLines(output string, keep func(line string) bool) []string {
	var lines []string
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if keep(line) {
			lines = append(lines, line)
		}
	}
	return lines
}
