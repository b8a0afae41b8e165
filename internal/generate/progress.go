package generate

import (
	"fmt"
	"strings"
	"time"
)

// Progress renders the initial progress.md accompanying a fresh task
// plan. firstTitle labels the current task; up to four upcoming tasks
// are listed under Next Up.
func Progress(firstTitle string, total int, now time.Time) string {
	var nextUp strings.Builder
	for i := 2; i <= total && i <= 5; i++ {
		fmt.Fprintf(&nextUp, "- [ ] Task %d\n", i)
	}
	upcoming := nextUp.String()
	if upcoming == "" {
		upcoming = "(none)\n"
	}

	var b strings.Builder
	b.WriteString("# Progress\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02"))
	b.WriteString("\n")
	b.WriteString("## Current Task\n")
	fmt.Fprintf(&b, "Task 1: %s\n", firstTitle)
	b.WriteString("Status: not started\n")
	b.WriteString("\n")
	b.WriteString("## Completed\n")
	b.WriteString("(none)\n")
	b.WriteString("\n")
	b.WriteString("## Next Up\n")
	b.WriteString(upcoming)
	b.WriteString("\n")
	b.WriteString("## Blockers\n")
	b.WriteString("(none)\n")
	return b.String()
}
