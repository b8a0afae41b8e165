package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// Artifact types and formats recorded in a manifest.
const (
	TypeTaskPlan         = "task_plan"
	TypeProgress         = "progress"
	TypePlanDocument     = "plan_document"
	TypeValidationReport = "validation_report"

	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ManifestFile is one produced artifact listed in a manifest.
type ManifestFile struct {
	Path   string `json:"path"`
	Type   string `json:"type"`
	Format string `json:"format"`
}

// Manifest lists the artifacts produced by a single plankit run.
// Result, Input, Strategy, and Feature are populated only by the runs
// they apply to.
type Manifest struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Tool        string         `json:"tool"`
	RunID       string         `json:"run_id"`
	Input       string         `json:"input,omitempty"`
	Strategy    string         `json:"strategy,omitempty"`
	Feature     string         `json:"feature,omitempty"`
	Files       []ManifestFile `json:"files"`
	Result      string         `json:"result,omitempty"`
	Errors      int            `json:"errors"`
	Warnings    int            `json:"warnings"`
	TotalTasks  int            `json:"total_tasks,omitempty"`
}

// WriteManifest writes the manifest as 2-space-indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return WriteFile(path, append(data, '\n'))
}
