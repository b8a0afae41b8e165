package generate

import (
	"fmt"
	"strings"
	"time"
)

// PlanDocParams holds the inputs for an implementation-plan document.
type PlanDocParams struct {
	FeatureName   string
	Objective     string
	Complexity    string
	Author        string
	BackendFiles  []string
	FrontendFiles []string
	Tasks         []string
	Risks         []string
	HasMigration  bool
	HasRSC        bool
}

// PlanDocTask is one entry of the structured plan's task list.
type PlanDocTask struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Preconditions []int  `json:"preconditions"`
}

// PlanDocument is the structured (JSON) form of an implementation plan.
type PlanDocument struct {
	FeatureName   string        `json:"feature_name"`
	Date          string        `json:"date"`
	Author        string        `json:"author"`
	Status        string        `json:"status"`
	Complexity    string        `json:"complexity"`
	Objective     string        `json:"objective"`
	BackendFiles  []string      `json:"backend_files"`
	FrontendFiles []string      `json:"frontend_files"`
	Tasks         []PlanDocTask `json:"tasks"`
	Risks         []string      `json:"risks"`
	HasMigration  bool          `json:"has_migration"`
	HasRSC        bool          `json:"has_rsc"`
}

// backendLayers maps path segments to backend layer names. Order matters:
// the first matching segment wins.
var backendLayers = []struct{ segment, layer string }{
	{"models", "Model"},
	{"schemas", "Schema"},
	{"repositories", "Repository"},
	{"services", "Service"},
	{"routers", "Router"},
	{"dependencies", "Dependency"},
	{"config", "Config"},
	{"alembic", "Migration"},
}

var frontendLayers = []struct{ segment, layer string }{
	{"pages", "Page"},
	{"components", "Component"},
	{"hooks", "Hook"},
	{"services", "Service"},
	{"types", "Type"},
}

// PlanDoc renders the implementation plan as a markdown document.
func PlanDoc(p PlanDocParams, now time.Time) string {
	date := now.Format("2006-01-02")

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("# Implementation Plan: %s", p.FeatureName)
	line("")
	line("## Metadata")
	line("")
	line("- **Date:** %s", date)
	line("- **Author:** %s", p.Author)
	line("- **Status:** Draft")
	line("- **Complexity:** %s", capitalize(p.Complexity))
	line("")
	line("## Objective")
	line("")
	line("%s", p.Objective)
	line("")
	line("## Affected Modules")
	line("")

	if len(p.BackendFiles) > 0 {
		line("### Backend")
		line("")
		line("| Layer | File Path | Action | Notes |")
		line("|-------|----------|--------|-------|")
		for _, f := range p.BackendFiles {
			line("| %s | `%s` | Create/Modify | — |", inferLayer(f, backendLayers), f)
		}
		line("")
	}

	if len(p.FrontendFiles) > 0 {
		line("### Frontend")
		line("")
		line("| Layer | File Path | Action | Notes |")
		line("|-------|----------|--------|-------|")
		for _, f := range p.FrontendFiles {
			line("| %s | `%s` | Create/Modify | — |", inferLayer(f, frontendLayers), f)
		}
		line("")
	}

	if p.HasRSC {
		line("### Server Component Decision")
		line("")
		line("This feature involves React Server Components. For each component:")
		line("- Determine if it needs interactivity (client) or is read-only (server)")
		line("- Server Components: data fetching, static content, zero client JS")
		line("- Client Components: hooks, event handlers, browser APIs")
		line("")
	}

	line("## Task List")
	line("")
	if len(p.Tasks) > 0 {
		for i, task := range p.Tasks {
			preconditions := "None"
			if i > 0 {
				preconditions = fmt.Sprintf("Task %d", i)
			}
			line("### Task %d: %s", i+1, task)
			line("")
			line("- **Files:** [identify from affected modules]")
			line("- **Preconditions:** %s", preconditions)
			line("- **Steps:**")
			line("  1. [define steps]")
			line("- **Verify:** [define verification]")
			line("- **Complexity:** %s", capitalize(p.Complexity))
			line("")
		}
	} else {
		line("### Task 1: [Title]")
		line("")
		line("- **Files:** [list]")
		line("- **Preconditions:** None")
		line("- **Steps:**")
		line("  1. [step]")
		line("- **Verify:** [command] — expect [result]")
		line("")
	}

	line("## Dependency Graph")
	line("")
	line("```")
	if len(p.Tasks) > 0 {
		for i, task := range p.Tasks {
			indent := strings.Repeat("  ", i)
			connector := ""
			if i > 0 {
				connector = "└── "
			}
			line("%s%sTask %d (%s)", indent, connector, i+1, task)
		}
	} else {
		line("Task 1 → Task 2 → Task 3")
	}
	line("```")
	line("")
	line("## Risk Assessment")
	line("")
	line("| Risk | Likelihood | Impact | Mitigation |")
	line("|------|-----------|--------|------------|")
	if len(p.Risks) > 0 {
		for _, risk := range p.Risks {
			line("| %s | Medium | Medium | [define mitigation] |", risk)
		}
	} else {
		line("| [identify risks] | Low/Med/High | Low/Med/High | [action] |")
	}
	if p.HasMigration {
		line("| Database migration on production | Medium | High | Test on staging, write downgrade(), backup before run |")
	}

	line("")
	line("## Acceptance Criteria")
	line("")
	line("- [ ] All tasks completed and verified")
	line("- [ ] All new code has unit tests with >80%% coverage")
	line("- [ ] Integration tests pass")
	line("- [ ] No security vulnerabilities introduced")
	line("- [ ] Pre-merge checklist passes")
	line("")

	if p.HasMigration {
		line("- [ ] Database migration tested on staging with production-like data")
		line("- [ ] Rollback migration tested")
		line("")
	}

	if p.HasRSC {
		line("- [ ] Server Components render correctly on server")
		line("- [ ] Client Components hydrate without errors")
		line("- [ ] No unnecessary client JS shipped for server-only components")
		line("")
	}

	line("## Notes")
	line("")
	line("Generated by plankit on %s.", date)
	line("Review and refine before implementation.")

	return b.String()
}

// PlanDocJSON builds the structured form of the plan document.
func PlanDocJSON(p PlanDocParams, now time.Time) PlanDocument {
	tasks := make([]PlanDocTask, len(p.Tasks))
	for i, task := range p.Tasks {
		preconditions := []int{}
		if i > 0 {
			preconditions = []int{i}
		}
		tasks[i] = PlanDocTask{ID: i + 1, Title: task, Preconditions: preconditions}
	}

	return PlanDocument{
		FeatureName:   p.FeatureName,
		Date:          now.Format("2006-01-02"),
		Author:        p.Author,
		Status:        "Draft",
		Complexity:    p.Complexity,
		Objective:     p.Objective,
		BackendFiles:  p.BackendFiles,
		FrontendFiles: p.FrontendFiles,
		Tasks:         tasks,
		Risks:         p.Risks,
		HasMigration:  p.HasMigration,
		HasRSC:        p.HasRSC,
	}
}

func inferLayer(filepath string, layers []struct{ segment, layer string }) string {
	for _, l := range layers {
		if strings.Contains(filepath, l.segment) {
			return l.layer
		}
	}
	return "Other"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
