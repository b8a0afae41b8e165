package taskplan

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoTasks indicates that the document contains no recognizable task
// headers at all. It is the only parse failure: malformed or missing
// fields inside a recognized block never fail the parse.
var ErrNoTasks = errors.New("no tasks found in plan")

// The recognized label set is a fixed protocol, not a general markdown
// grammar. Only these exact labels are matched.
var (
	taskHeaderRe    = regexp.MustCompile(`(?m)^###\s+Task\s+(\d+):[ \t]*(.*)$`)
	sectionRe       = regexp.MustCompile(`(?m)^##\s`)
	filesRe         = regexp.MustCompile(`\*\*Files:\*\*\s*(.+)`)
	preconditionsRe = regexp.MustCompile(`\*\*Preconditions:\*\*\s*(.+)`)
	doneWhenRe      = regexp.MustCompile(`\*\*Done when:\*\*\s*(.+)`)
	complexityRe    = regexp.MustCompile(`\*\*Complexity:\*\*\s*(\w+)`)
	parallelRe      = regexp.MustCompile(`\*\*Parallel:\*\*\s*(.+)`)
	stepsRe         = regexp.MustCompile(`\*\*Steps:\*\*\s*\n((?:\s+\d+\..+\n?)+)`)
	taskRefRe       = regexp.MustCompile(`Task\s+(\d+)`)
)

// Parse converts a plan document into an ordered sequence of tasks.
// A task block runs from its "### Task N: title" header to the next task
// header, the next top-level "## " section, or end of document. Order of
// appearance in the document is preserved.
//
// Returns ErrNoTasks when the document contains zero task headers.
func Parse(content string) ([]Task, error) {
	headers := taskHeaderRe.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		return nil, ErrNoTasks
	}

	tasks := make([]Task, 0, len(headers))
	for i, h := range headers {
		start := h[0]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		// A "## " section header inside the span also terminates the block.
		if loc := sectionRe.FindStringIndex(content[h[1]:end]); loc != nil {
			end = h[1] + loc[0]
		}
		block := content[start:end]

		number, err := strconv.Atoi(content[h[2]:h[3]])
		if err != nil {
			// Header regex only matches digits; overflow is the lone case.
			continue
		}

		tasks = append(tasks, Task{
			Number:        number,
			Title:         strings.TrimSpace(content[h[4]:h[5]]),
			Files:         parseFiles(firstGroup(filesRe, block)),
			Preconditions: parsePreconditions(firstGroup(preconditionsRe, block)),
			DoneWhen:      strings.TrimSpace(firstGroup(doneWhenRe, block)),
			Complexity:    strings.ToLower(firstGroup(complexityRe, block)),
			Parallel:      strings.TrimSpace(firstGroup(parallelRe, block)),
			HasSteps:      stepsRe.MatchString(block),
		})
	}

	return tasks, nil
}

// firstGroup returns the first capture group of the first match, or ""
// when the label is absent from the block.
func firstGroup(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return m[1]
}

// parseFiles splits a Files field value on commas and strips whitespace
// and surrounding backtick/quote decoration from each entry. Blank tokens
// are dropped so that an empty or decoration-only field yields an empty
// list rather than a list holding an empty string.
func parseFiles(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var files []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, "`'\"")
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		files = append(files, part)
	}
	return files
}

// parsePreconditions collects every "Task N" reference in a Preconditions
// field value. The literal value "none" (case-insensitive) yields an
// empty set regardless of any other content, as does a missing field.
func parsePreconditions(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") {
		return nil
	}

	var refs []int
	for _, m := range taskRefRe.FindAllStringSubmatch(raw, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		refs = append(refs, n)
	}
	return refs
}
