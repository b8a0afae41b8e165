package taskplan

import "slices"

// detectCycles finds circular dependencies in the task graph using a
// depth-first traversal. Nodes are task numbers; each precondition is a
// directed edge from the task to its dependency.
//
// Each returned cycle is a closed walk: the path slice from the repeated
// node's first occurrence, followed by the repeated node again. Fully
// explored nodes are never re-traversed, so a cycle reachable only
// through already-visited nodes is not reported twice — and may not be
// reported at all when several cycles share nodes. That matches the
// guarantee callers rely on: at least the first cycle reachable from
// each unvisited root is found.
func detectCycles(tasks []Task) [][]int {
	graph := make(map[int][]int, len(tasks))
	order := make([]int, 0, len(tasks))
	for _, t := range tasks {
		graph[t.Number] = t.Preconditions
		order = append(order, t.Number)
	}

	visited := make(map[int]bool, len(tasks))
	onStack := make(map[int]bool, len(tasks))
	var path []int
	var cycles [][]int

	var dfs func(node int)
	dfs = func(node int) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range graph[node] {
			if !visited[dep] {
				dfs(dep)
			} else if onStack[dep] {
				start := slices.Index(path, dep)
				cycle := make([]int, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
	}

	for _, n := range order {
		if !visited[n] {
			dfs(n)
		}
	}

	return cycles
}
