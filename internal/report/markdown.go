package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/plankit/internal/taskplan"
)

// Markdown renders a validation result as a human-readable report.
func Markdown(result taskplan.Result, sourcePath string, now time.Time) string {
	status := "FAIL"
	if result.Passed {
		status = "PASS"
	}

	var b strings.Builder
	b.WriteString("# Task Plan Validation Report\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "**File:** %s\n", sourcePath)
	fmt.Fprintf(&b, "**Date:** %s\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Status:** %s\n", status)
	fmt.Fprintf(&b, "**Tasks:** %d\n", result.TotalTasks)
	fmt.Fprintf(&b, "**Errors:** %d\n", result.ErrorCount)
	fmt.Fprintf(&b, "**Warnings:** %d\n", result.WarningCount)
	b.WriteString("\n")

	if len(result.Issues) > 0 {
		b.WriteString("## Errors\n")
		b.WriteString("\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "- **[%s]** %s\n", issue.Rule, issue.Message)
		}
		b.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n")
		b.WriteString("\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- **[%s]** %s\n", warning.Rule, warning.Message)
		}
		b.WriteString("\n")
	}

	if result.Passed && len(result.Warnings) == 0 {
		b.WriteString("All tasks pass validation rules.\n")
	}

	return b.String()
}
