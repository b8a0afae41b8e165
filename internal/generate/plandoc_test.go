package generate

import (
	"reflect"
	"strings"
	"testing"
)

func docParams() PlanDocParams {
	return PlanDocParams{
		FeatureName:   "User Search",
		Objective:     "Add server-side search to users list",
		Complexity:    "medium",
		Author:        "dev",
		BackendFiles:  []string{"app/repositories/user.py", "app/routers/users.py"},
		FrontendFiles: []string{"src/components/UserList.tsx", "src/hooks/useUsers.ts"},
		Tasks:         []string{"Add search to repository", "Expose search endpoint", "Wire up UI"},
		Risks:         []string{"Slow query on large tables"},
	}
}

func TestPlanDoc_Sections(t *testing.T) {
	md := PlanDoc(docParams(), testTime)

	for _, want := range []string{
		"# Implementation Plan: User Search",
		"- **Date:** 2026-08-30",
		"- **Complexity:** Medium",
		"## Objective",
		"## Affected Modules",
		"| Repository | `app/repositories/user.py` | Create/Modify | — |",
		"| Router | `app/routers/users.py` | Create/Modify | — |",
		"| Component | `src/components/UserList.tsx` | Create/Modify | — |",
		"| Hook | `src/hooks/useUsers.ts` | Create/Modify | — |",
		"### Task 1: Add search to repository",
		"### Task 2: Expose search endpoint",
		"- **Preconditions:** Task 1",
		"## Dependency Graph",
		"| Slow query on large tables | Medium | Medium | [define mitigation] |",
		"## Acceptance Criteria",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected document to contain %q, got:\n%s", want, md)
		}
	}
}

func TestPlanDoc_FirstTaskHasNoPreconditions(t *testing.T) {
	md := PlanDoc(docParams(), testTime)

	taskOne := md[strings.Index(md, "### Task 1:"):strings.Index(md, "### Task 2:")]
	if !strings.Contains(taskOne, "- **Preconditions:** None") {
		t.Fatalf("expected first task to have no preconditions:\n%s", taskOne)
	}
}

func TestPlanDoc_MigrationExtras(t *testing.T) {
	p := docParams()
	p.HasMigration = true

	md := PlanDoc(p, testTime)
	if !strings.Contains(md, "Database migration on production") {
		t.Fatalf("expected migration risk row:\n%s", md)
	}
	if !strings.Contains(md, "Rollback migration tested") {
		t.Fatalf("expected migration acceptance criteria:\n%s", md)
	}
}

func TestPlanDoc_RSCExtras(t *testing.T) {
	p := docParams()
	p.HasRSC = true

	md := PlanDoc(p, testTime)
	if !strings.Contains(md, "### Server Component Decision") {
		t.Fatalf("expected server component section:\n%s", md)
	}
	if !strings.Contains(md, "Client Components hydrate without errors") {
		t.Fatalf("expected RSC acceptance criteria:\n%s", md)
	}
}

func TestPlanDoc_EmptyTasksUsesPlaceholder(t *testing.T) {
	p := docParams()
	p.Tasks = nil

	md := PlanDoc(p, testTime)
	if !strings.Contains(md, "### Task 1: [Title]") {
		t.Fatalf("expected placeholder task:\n%s", md)
	}
}

func TestPlanDocJSON_TaskChain(t *testing.T) {
	doc := PlanDocJSON(docParams(), testTime)

	if doc.Status != "Draft" {
		t.Fatalf("expected Draft status, got %q", doc.Status)
	}
	if len(doc.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(doc.Tasks))
	}
	if len(doc.Tasks[0].Preconditions) != 0 {
		t.Fatalf("first task must have no preconditions, got %v", doc.Tasks[0].Preconditions)
	}
	if !reflect.DeepEqual(doc.Tasks[2].Preconditions, []int{2}) {
		t.Fatalf("expected third task to depend on 2, got %v", doc.Tasks[2].Preconditions)
	}
	if doc.Date != "2026-08-30" {
		t.Fatalf("unexpected date %q", doc.Date)
	}
}

func TestInferLayer_Unknown(t *testing.T) {
	if got := inferLayer("scripts/tool.py", backendLayers); got != "Other" {
		t.Fatalf("expected Other, got %q", got)
	}
}
