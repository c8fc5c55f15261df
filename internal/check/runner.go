package check

import (
	"context"
	"strings"

	"github.com/thoreinstein/qgate/internal/advisor"
	"github.com/thoreinstein/qgate/internal/classify"
	"github.com/thoreinstein/qgate/internal/executor"
)

// Runner drives one check: execute, classify, advise.
type Runner struct {
	kind       Kind
	command    executor.Command
	dir        string
	exec       executor.Executor
	classifier classify.Classifier
	advisor    *advisor.Advisor
}

// NewRunner creates a Runner for kind using the matching classifier.
func NewRunner(kind Kind, cmd executor.Command, dir string, exec executor.Executor, adv *advisor.Advisor) *Runner {
	return &Runner{
		kind:       kind,
		command:    cmd,
		dir:        dir,
		exec:       exec,
		classifier: classifierFor(kind),
		advisor:    adv,
	}
}

// Kind returns the check this runner drives.
func (r *Runner) Kind() Kind {
	return r.kind
}

// Command returns the command this runner executes.
func (r *Runner) Command() executor.Command {
	return r.command
}

// Run executes the check. It never returns an error; every failure mode is
// folded into the Result.
func (r *Runner) Run(ctx context.Context) Result {
	res := r.exec.Run(ctx, r.command, r.dir)
	output := res.Combined()

	if r.kind == KindTests && noTests(output) {
		return Result{
			Name:     r.kind,
			Status:   StatusSkip,
			ExitCode: res.ExitCode,
			Output:   output,
		}
	}

	result := Result{
		Name:     r.kind,
		Status:   StatusPass,
		ExitCode: res.ExitCode,
		Output:   output,
	}
	if r.kind == KindTests {
		result.Summary = testSummary(output)
	}

	if res.ExitCode == 0 {
		return result
	}

	errs := r.classifier.Classify(output)
	result.Status = StatusFail
	result.Errors = truncate(errs)
	result.Suggestion = r.advisor.Suggest(string(r.kind), errs)
	return result
}

func classifierFor(kind Kind) classify.Classifier {
	switch kind {
	case KindTypeCheck:
		return classify.TypeCheck
	case KindLint:
		return classify.Lint
	default:
		return classify.Test
	}
}

func noTests(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "no test files found") || strings.Contains(lower, "no tests found")
}

// testSummary returns the first line mentioning "passed" or "test".
func testSummary(output string) string {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "passed") || strings.Contains(lower, "test") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func truncate(errs []string) []string {
	if len(errs) > MaxErrors {
		errs = errs[:MaxErrors]
	}
	return append([]string(nil), errs...)
}
