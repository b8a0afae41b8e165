// Package tui implements the interactive task plan viewer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/plankit/internal/taskplan"
)

const minDetailHeight = 3

// Model is the bubbletea model for the plan viewer. It shows the parsed
// task list with validation annotations and a scrollable detail pane for
// the selected task.
type Model struct {
	tasks  []taskplan.Task
	result taskplan.Result
	source string

	cursor int
	width  int
	height int
	detail viewport.Model
	ready  bool
}

// NewModel creates a viewer model for the given tasks. The validation
// result is computed once up front; the viewer never mutates tasks.
func NewModel(tasks []taskplan.Task, source string) Model {
	return Model{
		tasks:  tasks,
		result: taskplan.Validate(tasks),
		source: source,
	}
}

// Run starts the interactive plan viewer and blocks until it exits.
func Run(tasks []taskplan.Task, source string) error {
	p := tea.NewProgram(NewModel(tasks, source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run plan viewer: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
				m.refreshDetail()
			}
			return m, nil
		}
	}

	// Remaining messages (page up/down, mouse wheel) scroll the detail.
	if m.ready {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

// layout recomputes pane sizes after a resize.
func (m *Model) layout() {
	listHeight := len(m.tasks)
	// title + blank + list + blank + detail border + status bar
	detailHeight := m.height - listHeight - 6
	if detailHeight < minDetailHeight {
		detailHeight = minDetailHeight
	}

	detailWidth := m.width - 4 // border + padding
	if detailWidth < 0 {
		detailWidth = 0
	}

	if !m.ready {
		m.detail = viewport.New(detailWidth, detailHeight)
		m.ready = true
	} else {
		m.detail.Width = detailWidth
		m.detail.Height = detailHeight
	}
	m.refreshDetail()
}

// refreshDetail rerenders the detail pane for the selected task.
func (m *Model) refreshDetail() {
	if !m.ready || len(m.tasks) == 0 {
		return
	}
	m.detail.SetContent(m.detailContent(m.tasks[m.cursor]))
	m.detail.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Task Plan: %s", m.source)))
	b.WriteString("\n\n")

	for i, task := range m.tasks {
		b.WriteString(m.formatTaskLine(i, task))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(m.width - 2).Render(m.detail.View()))
	b.WriteString("\n")

	status := ErrorStyle.Render(fmt.Sprintf("FAIL (%d errors)", m.result.ErrorCount))
	if m.result.Passed {
		status = SuccessStyle.Render("PASS")
	}
	items := []string{status, "↑↓ Navigate", "PgUp/PgDn Scroll", "q Quit"}
	b.WriteString(NewStatusBar().Render(m.width, items))

	return b.String()
}

// formatTaskLine formats a single task list entry with its validation
// annotations.
func (m Model) formatTaskLine(index int, task taskplan.Task) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	line := fmt.Sprintf("%s Task %d: %s", indicator, task.Number, task.Title)
	if task.Complexity != "" {
		line += SubtleStyle.Render(fmt.Sprintf("  [%s]", task.Complexity))
	}

	errs, warns := m.findingCounts(task.Number)
	if errs > 0 {
		line += " " + ErrorStyle.Render(fmt.Sprintf("✗%d", errs))
	}
	if warns > 0 {
		line += " " + WarningStyle.Render(fmt.Sprintf("!%d", warns))
	}

	if index == m.cursor {
		return SelectedStyle.Render(line)
	}
	return line
}

// findingCounts returns the number of errors and warnings attributed to
// a task.
func (m Model) findingCounts(number int) (errs, warns int) {
	for _, f := range m.result.Issues {
		if f.Task == number {
			errs++
		}
	}
	for _, f := range m.result.Warnings {
		if f.Task == number {
			warns++
		}
	}
	return errs, warns
}

// detailContent renders the full field set of a task for the detail pane.
func (m Model) detailContent(task taskplan.Task) string {
	label := func(s string) string { return SubtleStyle.Render(s) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", label("Title:"), task.Title)

	files := "(none)"
	if len(task.Files) > 0 {
		files = strings.Join(task.Files, ", ")
	}
	fmt.Fprintf(&b, "%s %s\n", label("Files:"), files)

	preconditions := "none"
	if len(task.Preconditions) > 0 {
		refs := make([]string, len(task.Preconditions))
		for i, p := range task.Preconditions {
			refs[i] = fmt.Sprintf("Task %d", p)
		}
		preconditions = strings.Join(refs, ", ")
	}
	fmt.Fprintf(&b, "%s %s\n", label("Preconditions:"), preconditions)

	fmt.Fprintf(&b, "%s %s\n", label("Done when:"), orPlaceholder(task.DoneWhen))
	fmt.Fprintf(&b, "%s %s\n", label("Complexity:"), orPlaceholder(task.Complexity))
	fmt.Fprintf(&b, "%s %s\n", label("Parallel:"), orPlaceholder(task.Parallel))

	steps := "no"
	if task.HasSteps {
		steps = "yes"
	}
	fmt.Fprintf(&b, "%s %s\n", label("Steps listed:"), steps)

	findings := m.taskFindings(task.Number)
	if len(findings) > 0 {
		b.WriteString("\n")
		b.WriteString(label("Findings:"))
		b.WriteString("\n")
		for _, f := range findings {
			style := WarningStyle
			if f.Severity == taskplan.SeverityError {
				style = ErrorStyle
			}
			fmt.Fprintf(&b, "%s %s\n", style.Render(fmt.Sprintf("[%s]", f.Rule)), f.Message)
		}
	}

	return b.String()
}

// taskFindings returns all findings attributed to a task, errors first.
func (m Model) taskFindings(number int) []taskplan.Finding {
	var findings []taskplan.Finding
	for _, f := range m.result.Issues {
		if f.Task == number {
			findings = append(findings, f)
		}
	}
	for _, f := range m.result.Warnings {
		if f.Task == number {
			findings = append(findings, f)
		}
	}
	return findings
}

func orPlaceholder(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}
