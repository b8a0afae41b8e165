package taskplan

import (
	"fmt"

	"github.com/gammazero/toposort"
)

// ExecutionOrder returns the task numbers in an order that satisfies all
// declared preconditions. References to unknown tasks are skipped here;
// reporting them is the preconditions rule's job.
//
// Returns an error when the dependency graph contains a cycle.
func ExecutionOrder(tasks []Task) ([]int, error) {
	known := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		known[t.Number] = true
	}

	var edges []toposort.Edge
	for _, t := range tasks {
		connected := false
		for _, dep := range t.Preconditions {
			if !known[dep] {
				continue
			}
			// Edge (dep, task): the dependency sorts first.
			edges = append(edges, toposort.Edge{dep, t.Number})
			connected = true
		}
		if !connected {
			// Root task: a nil-source edge keeps it in the sort.
			edges = append(edges, toposort.Edge{nil, t.Number})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("plan is not executable in order: %w", err)
	}

	order := make([]int, 0, len(tasks))
	for _, n := range sorted {
		if n != nil {
			order = append(order, n.(int))
		}
	}
	return order, nil
}
