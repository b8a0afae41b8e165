package taskplan

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectCycles_DirectTwoCycle(t *testing.T) {
	tasks := []Task{goodTask(1, 2), goodTask(2, 1)}

	cycles := detectCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if !reflect.DeepEqual(cycles[0], []int{1, 2, 1}) {
		t.Fatalf("expected cycle [1 2 1], got %v", cycles[0])
	}
}

func TestDetectCycles_LinearChainHasNone(t *testing.T) {
	tasks := []Task{goodTask(1), goodTask(2, 1), goodTask(3, 2)}

	if cycles := detectCycles(tasks); len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %v", cycles)
	}
}

func TestDetectCycles_SelfDependency(t *testing.T) {
	tasks := []Task{goodTask(1, 1)}

	cycles := detectCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	if !reflect.DeepEqual(cycles[0], []int{1, 1}) {
		t.Fatalf("expected cycle [1 1], got %v", cycles[0])
	}
}

func TestDetectCycles_DisjointCyclesReportedSeparately(t *testing.T) {
	tasks := []Task{
		goodTask(1, 2), goodTask(2, 1),
		goodTask(3, 4), goodTask(4, 3),
	}

	cycles := detectCycles(tasks)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %d: %v", len(cycles), cycles)
	}
}

func TestDetectCycles_VisitedNodesNotRetraversed(t *testing.T) {
	// Task 3 reaches the 1<->2 cycle through already-visited nodes; the
	// cycle must not be reported a second time.
	tasks := []Task{goodTask(1, 2), goodTask(2, 1), goodTask(3, 1)}

	cycles := detectCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
}

func TestValidate_CycleBecomesAcyclicError(t *testing.T) {
	result := Validate([]Task{goodTask(1, 2), goodTask(2, 1)})

	errs := findByRule(result.Issues, RuleAcyclic)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 acyclic error, got %d", len(errs))
	}
	if errs[0].Task != 1 {
		t.Fatalf("expected cycle attributed to task 1, got %d", errs[0].Task)
	}
	if !strings.Contains(errs[0].Message, "Task 1 -> Task 2 -> Task 1") {
		t.Fatalf("expected full cycle path in message, got %q", errs[0].Message)
	}
	if result.Passed {
		t.Fatalf("expected failed result")
	}
}

func TestValidate_NoFalseCycleOnLinearChain(t *testing.T) {
	result := Validate([]Task{goodTask(1), goodTask(2, 1), goodTask(3, 2)})

	if len(findByRule(result.Issues, RuleAcyclic)) != 0 {
		t.Fatalf("expected no acyclic errors, got %v", result.Issues)
	}
}
