package taskplan

import (
	"reflect"
	"strings"
	"testing"
)

// goodTask returns a task that passes every rule.
func goodTask(number int, preconditions ...int) Task {
	return Task{
		Number:        number,
		Title:         "A well formed task",
		Files:         []string{"main.go"},
		Preconditions: preconditions,
		DoneWhen:      "go test ./... passes",
		Complexity:    ComplexitySmall,
		Parallel:      "must be sequential",
		HasSteps:      true,
	}
}

func findByRule(findings []Finding, rule string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func TestValidate_CleanPlanPasses(t *testing.T) {
	result := Validate([]Task{goodTask(1), goodTask(2, 1), goodTask(3, 2)})

	if !result.Passed {
		t.Fatalf("expected passed, got issues: %v", result.Issues)
	}
	if result.TotalTasks != 3 {
		t.Fatalf("expected 3 total tasks, got %d", result.TotalTasks)
	}
	if result.ErrorCount != 0 || result.WarningCount != 0 {
		t.Fatalf("expected no findings, got %d errors %d warnings", result.ErrorCount, result.WarningCount)
	}
}

func TestValidate_AtomicScopeIsExactlyOneError(t *testing.T) {
	task := goodTask(1)
	task.Files = []string{"a.py", "b.py", "c.py", "d.py"}

	result := Validate([]Task{task})

	errs := findByRule(result.Issues, RuleAtomicScope)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 atomic_scope error, got %d", len(errs))
	}
	if errs[0].Severity != SeverityError {
		t.Fatalf("expected error severity, got %q", errs[0].Severity)
	}
	if len(findByRule(result.Warnings, RuleAtomicScope)) != 0 {
		t.Fatalf("atomic_scope must never be a warning")
	}
	if !strings.Contains(errs[0].Message, "Touches 4 files") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestValidate_ThreeFilesIsFine(t *testing.T) {
	task := goodTask(1)
	task.Files = []string{"a.py", "b.py", "c.py"}

	result := Validate([]Task{task})
	if len(findByRule(result.Issues, RuleAtomicScope)) != 0 {
		t.Fatalf("expected no atomic_scope error for 3 files")
	}
}

func TestValidate_MissingDoneWhen(t *testing.T) {
	task := goodTask(1)
	task.DoneWhen = ""

	result := Validate([]Task{task})

	errs := findByRule(result.Issues, RuleVerifiable)
	if len(errs) != 1 {
		t.Fatalf("expected 1 verifiable error, got %d", len(errs))
	}
	if result.Passed {
		t.Fatalf("expected failed result")
	}
}

func TestValidate_PlaceholderDoneWhenIsWarning(t *testing.T) {
	for _, placeholder := range []string{"TBD", "todo", "N/A"} {
		task := goodTask(1)
		task.DoneWhen = placeholder

		result := Validate([]Task{task})

		if len(findByRule(result.Issues, RuleVerifiable)) != 0 {
			t.Fatalf("placeholder %q must not be an error", placeholder)
		}
		warns := findByRule(result.Warnings, RuleVerifiable)
		if len(warns) != 1 {
			t.Fatalf("placeholder %q: expected 1 warning, got %d", placeholder, len(warns))
		}
		if !result.Passed {
			t.Fatalf("warnings must not fail validation")
		}
	}
}

func TestValidate_MissingStepsIsWarning(t *testing.T) {
	task := goodTask(1)
	task.HasSteps = false

	result := Validate([]Task{task})

	if len(findByRule(result.Warnings, RuleSteps)) != 1 {
		t.Fatalf("expected 1 steps warning")
	}
	if !result.Passed {
		t.Fatalf("expected passed despite steps warning")
	}
}

func TestValidate_DanglingPrecondition(t *testing.T) {
	result := Validate([]Task{goodTask(1), goodTask(2, 99)})

	errs := findByRule(result.Issues, RulePreconditions)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 preconditions error, got %d", len(errs))
	}
	if errs[0].Task != 2 {
		t.Fatalf("expected error attributed to task 2, got %d", errs[0].Task)
	}
	if !strings.Contains(errs[0].Message, "References Task 99 which does not exist") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestValidate_NonContiguousNumbersAreValidReferences(t *testing.T) {
	result := Validate([]Task{goodTask(10), goodTask(20, 10)})

	if len(findByRule(result.Issues, RulePreconditions)) != 0 {
		t.Fatalf("expected no preconditions error for existing task numbers")
	}
}

func TestValidate_MissingComplexity(t *testing.T) {
	task := goodTask(1)
	task.Complexity = ""

	result := Validate([]Task{task})

	if len(findByRule(result.Issues, RuleComplexity)) != 1 {
		t.Fatalf("expected 1 complexity error")
	}
}

func TestValidate_NonStandardComplexityIsWarning(t *testing.T) {
	task := goodTask(1)
	task.Complexity = "gigantic"

	result := Validate([]Task{task})

	if len(findByRule(result.Issues, RuleComplexity)) != 0 {
		t.Fatalf("non-standard complexity must not be an error")
	}
	warns := findByRule(result.Warnings, RuleComplexity)
	if len(warns) != 1 {
		t.Fatalf("expected 1 complexity warning, got %d", len(warns))
	}
	if !strings.Contains(warns[0].Message, "Use: trivial, small, medium, large") {
		t.Fatalf("unexpected message: %q", warns[0].Message)
	}
}

func TestValidate_NoFilesIsWarning(t *testing.T) {
	task := goodTask(1)
	task.Files = nil

	result := Validate([]Task{task})

	if len(findByRule(result.Warnings, RuleFiles)) != 1 {
		t.Fatalf("expected 1 files warning")
	}
	if !result.Passed {
		t.Fatalf("expected passed despite files warning")
	}
}

func TestValidate_CountsMatchLists(t *testing.T) {
	bad := Task{Number: 1, Title: "Everything wrong", Files: []string{"a", "b", "c", "d"}}
	result := Validate([]Task{bad, goodTask(2, 1)})

	if result.ErrorCount != len(result.Issues) {
		t.Fatalf("ErrorCount %d != len(Issues) %d", result.ErrorCount, len(result.Issues))
	}
	if result.WarningCount != len(result.Warnings) {
		t.Fatalf("WarningCount %d != len(Warnings) %d", result.WarningCount, len(result.Warnings))
	}
	if result.Passed != (result.ErrorCount == 0) {
		t.Fatalf("Passed %v inconsistent with ErrorCount %d", result.Passed, result.ErrorCount)
	}
}

func TestValidate_RuleEmissionOrderPerTask(t *testing.T) {
	// One task violating every error rule: findings must follow the fixed
	// rule order for determinism.
	task := Task{Number: 1, Files: []string{"a", "b", "c", "d"}, Preconditions: []int{9}}
	result := Validate([]Task{task})

	wantRules := []string{RuleAtomicScope, RuleVerifiable, RulePreconditions, RuleComplexity}
	var gotRules []string
	for _, f := range result.Issues {
		gotRules = append(gotRules, f.Rule)
	}
	if !reflect.DeepEqual(gotRules, wantRules) {
		t.Fatalf("expected issue order %v, got %v", wantRules, gotRules)
	}

	wantWarnings := []string{RuleSteps}
	var gotWarnings []string
	for _, f := range result.Warnings {
		gotWarnings = append(gotWarnings, f.Rule)
	}
	if !reflect.DeepEqual(gotWarnings, wantWarnings) {
		t.Fatalf("expected warning order %v, got %v", wantWarnings, gotWarnings)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	tasks := []Task{
		{Number: 1, Files: []string{"a", "b", "c", "d"}, Preconditions: []int{2}},
		{Number: 2, DoneWhen: "tbd", Complexity: "huge", Preconditions: []int{1}},
	}

	first := Validate(tasks)
	second := Validate(tasks)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results across runs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidate_EndToEndScenario(t *testing.T) {
	doc := strings.Join([]string{
		"### Task 1: Ship the feature",
		"- **Files:** a.py, b.py, c.py, d.py",
		"- **Preconditions:** none",
		"- **Done when:** tests pass",
		"- **Complexity:** small",
		"",
	}, "\n")

	tasks, err := Parse(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result := Validate(tasks)

	if result.Passed {
		t.Fatalf("expected failed result")
	}
	if result.ErrorCount != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", result.ErrorCount, result.Issues)
	}
	if result.Issues[0].Rule != RuleAtomicScope {
		t.Fatalf("expected atomic_scope error, got %q", result.Issues[0].Rule)
	}
	// The only warning is the missing steps block.
	if result.WarningCount != 1 || result.Warnings[0].Rule != RuleSteps {
		t.Fatalf("expected only a steps warning, got %v", result.Warnings)
	}
}

func TestValidate_LiteralNoneIsNotInferred(t *testing.T) {
	doc := strings.Join([]string{
		"### Task 1: First",
		"- **Files:** a.go",
		"- **Preconditions:** none",
		"- **Done when:** go test ./... passes",
		"- **Complexity:** small",
		"- **Steps:**",
		"  1. Do it",
		"",
		"### Task 2: Second",
		"- **Files:** b.go",
		"- **Preconditions:** none",
		"- **Done when:** go test ./... passes",
		"- **Complexity:** small",
		"- **Steps:**",
		"  1. Do it",
		"",
	}, "\n")

	tasks, err := Parse(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tasks[1].Preconditions) != 0 {
		t.Fatalf("expected literal none to stay empty, got %v", tasks[1].Preconditions)
	}

	result := Validate(tasks)
	if len(findByRule(result.Issues, RulePreconditions)) != 0 {
		t.Fatalf("expected no preconditions error, got %v", result.Issues)
	}
	if !result.Passed {
		t.Fatalf("expected passed, got %v", result.Issues)
	}
}
