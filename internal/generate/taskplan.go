package generate

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// layerOrder imposes the build order for layer-based decomposition.
// Layers not in this list sort last, preserving their input order.
var layerOrder = []string{
	"infrastructure", "model", "migration", "schema", "repository",
	"service", "router", "types", "api-service", "hook",
	"component", "page", "unit-test", "integration-test", "e2e-test",
}

// taskSpec holds the field values rendered into one task block.
type taskSpec struct {
	num           int
	title         string
	files         string
	preconditions string
	steps         []string
	doneWhen      string
	complexity    string
	parallel      string
}

// TaskPlan renders a task_plan.md document for the objective and returns
// the content together with the number of generated tasks.
func TaskPlan(obj *Objective, now time.Time) (string, int) {
	feature := obj.FeatureName
	if feature == "" {
		feature = DefaultFeatureName
	}
	strategy, err := ParseStrategy(obj.Strategy)
	if err != nil {
		strategy = StrategyLayerBased
	}

	var specs []taskSpec
	switch strategy {
	case StrategyLayerBased:
		specs = layerBasedTasks(obj.Layers)
	case StrategyFeatureFirst:
		specs = featureFirstTasks(feature)
	case StrategyMigration:
		specs = migrationTasks()
	}

	if len(specs) == 0 {
		specs = []taskSpec{{
			num:           1,
			title:         fmt.Sprintf("Implement %s", feature),
			files:         "TBD",
			preconditions: "none",
			steps:         []string{obj.Objective},
			doneWhen:      "TBD",
			complexity:    "medium",
			parallel:      "must be sequential",
		}}
	}

	var blocks []string
	for _, spec := range specs {
		blocks = append(blocks, renderTask(spec))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Task Plan: %s\n", feature)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Strategy: %s\n", strategy)
	b.WriteString("Status: IN_PROGRESS\n")
	fmt.Fprintf(&b, "Total tasks: %d\n", len(specs))
	b.WriteString("Completed: 0\n")
	b.WriteString("\n")
	b.WriteString("---\n")
	b.WriteString("\n")
	b.WriteString(strings.Join(blocks, "\n"))

	if len(obj.Constraints) > 0 {
		b.WriteString("\n## Constraints\n")
		for _, c := range obj.Constraints {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	return b.String(), len(specs)
}

// renderTask formats one task block using the fixed field-label protocol
// the validator parses.
func renderTask(spec taskSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Task %d: %s\n", spec.num, spec.title)
	fmt.Fprintf(&b, "- **Files:** %s\n", spec.files)
	fmt.Fprintf(&b, "- **Preconditions:** %s\n", spec.preconditions)
	b.WriteString("- **Steps:**\n")
	for i, step := range spec.steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "- **Done when:** %s\n", spec.doneWhen)
	fmt.Fprintf(&b, "- **Complexity:** %s\n", spec.complexity)
	fmt.Fprintf(&b, "- **Parallel:** %s\n", spec.parallel)
	return b.String()
}

func layerBasedTasks(layers []string) []taskSpec {
	ordered := slices.Clone(layers)
	slices.SortStableFunc(ordered, func(a, b string) int {
		return layerRank(a) - layerRank(b)
	})

	var specs []taskSpec
	for i, layer := range ordered {
		num := i + 1
		preconditions := "none"
		if num > 1 {
			preconditions = fmt.Sprintf("Task %d", num-1)
		}
		specs = append(specs, taskSpec{
			num:           num,
			title:         fmt.Sprintf("Implement %s layer", layer),
			files:         fmt.Sprintf("`app/%ss/` or `src/%ss/`", layer, layer),
			preconditions: preconditions,
			steps: []string{
				fmt.Sprintf("Create/update %s implementation", layer),
				"Follow project conventions",
			},
			doneWhen:   fmt.Sprintf("Tests for %s pass", layer),
			complexity: "small",
			parallel:   "must be sequential",
		})
	}
	return specs
}

func layerRank(layer string) int {
	if i := slices.Index(layerOrder, layer); i >= 0 {
		return i
	}
	return len(layerOrder) + 1
}

func featureFirstTasks(feature string) []taskSpec {
	return []taskSpec{
		{
			num:           1,
			title:         fmt.Sprintf("Implement %s - backend slice", feature),
			files:         "Backend files for feature",
			preconditions: "none",
			steps:         []string{"Implement backend feature slice", "Add unit tests"},
			doneWhen:      "Backend tests pass",
			complexity:    "medium",
			parallel:      "Can run alongside frontend design",
		},
		{
			num:           2,
			title:         fmt.Sprintf("Implement %s - frontend slice", feature),
			files:         "Frontend files for feature",
			preconditions: "Task 1",
			steps:         []string{"Implement frontend feature slice", "Add component tests"},
			doneWhen:      "Frontend tests pass",
			complexity:    "medium",
			parallel:      "must be sequential",
		},
	}
}

func migrationTasks() []taskSpec {
	return []taskSpec{
		{
			num:           1,
			title:         "Implement new path alongside old path",
			files:         "New implementation files",
			preconditions: "none",
			steps:         []string{"Create new implementation", "Keep old path untouched"},
			doneWhen:      "New path tests pass AND old path still works",
			complexity:    "medium",
			parallel:      "must be sequential",
		},
		{
			num:           2,
			title:         "Dual-write to both old and new paths",
			files:         "Integration points",
			preconditions: "Task 1",
			steps:         []string{"Add dual-write logic", "Verify both paths produce identical results"},
			doneWhen:      "Integration tests confirm both paths match",
			complexity:    "medium",
			parallel:      "must be sequential",
		},
		{
			num:           3,
			title:         "Switch to new path and remove old path",
			files:         "Old implementation files, integration points",
			preconditions: "Task 2",
			steps:         []string{"Remove old path references", "Clean up dual-write code"},
			doneWhen:      "All tests pass with only new path",
			complexity:    "medium",
			parallel:      "must be sequential",
		},
	}
}
