package taskplan

import (
	"fmt"
	"strings"
)

// MaxTaskFiles is the atomic-scope ceiling: a task touching more files
// than this must be split.
const MaxTaskFiles = 3

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single validator-emitted issue or warning.
type Finding struct {
	Task     int      `json:"task"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Rule names attached to findings.
const (
	RuleAtomicScope   = "atomic_scope"
	RuleVerifiable    = "verifiable"
	RuleSteps         = "steps"
	RulePreconditions = "preconditions"
	RuleComplexity    = "complexity"
	RuleFiles         = "files"
	RuleAcyclic       = "acyclic"
)

// placeholderDoneWhen are verification values that count as placeholders
// rather than concrete commands.
var placeholderDoneWhen = []string{"tbd", "todo", "n/a"}

// Result aggregates the findings of a validation run. JSON field names
// match the validation-report format consumed by report renderers.
type Result struct {
	TotalTasks   int       `json:"total_tasks"`
	ErrorCount   int       `json:"errors"`
	WarningCount int       `json:"warnings"`
	Issues       []Finding `json:"issues"`
	Warnings     []Finding `json:"warnings_list"`
	Passed       bool      `json:"passed"`
}

// Validate applies the decomposition rule set to every task and returns
// the aggregate result. Rules are evaluated exhaustively: a failing rule
// never suppresses later rules on the same task. Validate never fails;
// callers must reject an empty task list before calling (nothing to
// validate is an input error, not a passing result).
//
// Per-task rules, in emission order:
//   - atomic_scope (error): more than MaxTaskFiles files listed
//   - verifiable (error): no Done-when verification
//   - verifiable (warning): Done-when is a placeholder
//   - steps (warning): no numbered steps block
//   - preconditions (error): reference to an unknown task number
//   - complexity (error): no complexity sizing
//   - complexity (warning): non-standard complexity label
//   - files (warning): no files listed
//
// A whole-plan cycle detection pass follows, emitting one acyclic error
// per detected dependency cycle.
func Validate(tasks []Task) Result {
	issues := make([]Finding, 0)
	warnings := make([]Finding, 0)

	known := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		known[t.Number] = true
	}

	for _, t := range tasks {
		prefix := fmt.Sprintf("Task %d", t.Number)

		if len(t.Files) > MaxTaskFiles {
			issues = append(issues, Finding{
				Task:     t.Number,
				Rule:     RuleAtomicScope,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s: Touches %d files (max %d). Split this task.", prefix, len(t.Files), MaxTaskFiles),
			})
		}

		if t.DoneWhen == "" {
			issues = append(issues, Finding{
				Task:     t.Number,
				Rule:     RuleVerifiable,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s: Missing 'Done when' verification command.", prefix),
			})
		} else if isPlaceholder(t.DoneWhen) {
			warnings = append(warnings, Finding{
				Task:     t.Number,
				Rule:     RuleVerifiable,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s: 'Done when' is placeholder (%s). Needs a concrete command.", prefix, t.DoneWhen),
			})
		}

		if !t.HasSteps {
			warnings = append(warnings, Finding{
				Task:     t.Number,
				Rule:     RuleSteps,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s: No steps found. Add concrete action steps.", prefix),
			})
		}

		for _, dep := range t.Preconditions {
			if !known[dep] {
				issues = append(issues, Finding{
					Task:     t.Number,
					Rule:     RulePreconditions,
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s: References Task %d which does not exist.", prefix, dep),
				})
			}
		}

		if t.Complexity == "" {
			issues = append(issues, Finding{
				Task:     t.Number,
				Rule:     RuleComplexity,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s: Missing complexity sizing.", prefix),
			})
		} else if !IsValidComplexity(t.Complexity) {
			warnings = append(warnings, Finding{
				Task:     t.Number,
				Rule:     RuleComplexity,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s: Complexity '%s' not standard. Use: %s", prefix, t.Complexity, strings.Join(ValidComplexities, ", ")),
			})
		}

		if len(t.Files) == 0 {
			warnings = append(warnings, Finding{
				Task:     t.Number,
				Rule:     RuleFiles,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s: No files listed.", prefix),
			})
		}
	}

	for _, cycle := range detectCycles(tasks) {
		issues = append(issues, Finding{
			Task:     cycle[0],
			Rule:     RuleAcyclic,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Circular dependency detected: %s", formatCycle(cycle)),
		})
	}

	return Result{
		TotalTasks:   len(tasks),
		ErrorCount:   len(issues),
		WarningCount: len(warnings),
		Issues:       issues,
		Warnings:     warnings,
		Passed:       len(issues) == 0,
	}
}

func isPlaceholder(doneWhen string) bool {
	lowered := strings.ToLower(doneWhen)
	for _, p := range placeholderDoneWhen {
		if lowered == p {
			return true
		}
	}
	return false
}

// formatCycle renders a cycle path as "Task 1 -> Task 2 -> Task 1".
func formatCycle(cycle []int) string {
	parts := make([]string, len(cycle))
	for i, n := range cycle {
		parts[i] = fmt.Sprintf("Task %d", n)
	}
	return strings.Join(parts, " -> ")
}
