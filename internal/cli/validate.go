package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/plankit/internal/config"
	"github.com/pablasso/plankit/internal/report"
	"github.com/pablasso/plankit/internal/taskplan"
	"github.com/pablasso/plankit/internal/tui"
	"github.com/pablasso/plankit/internal/util"
)

var validateOutputDir string

// ValidateOptions holds the options for the validate command.
type ValidateOptions struct {
	PlanPath  string
	OutputDir string
}

// ValidateArtifacts describes what a validation run produced.
type ValidateArtifacts struct {
	Tasks        []taskplan.Task
	Result       taskplan.Result
	JSONReport   string
	MarkdownPath string
	ManifestPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate <task_plan.md>",
	Short: "Validate a task plan against decomposition rules",
	Long:  `Validate parses a task_plan.md file, checks every task for atomic scope, verification, preconditions, and complexity sizing, detects circular dependencies, and writes JSON and markdown reports plus a manifest of produced files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts := ValidateOptions{
			PlanPath:  args[0],
			OutputDir: cfg.OutputDir,
		}
		if cmd.Flags().Changed("output-dir") {
			opts.OutputDir = validateOutputDir
		}

		artifacts, err := runValidate(opts)
		if err != nil {
			return err
		}

		printValidateSummary(artifacts)

		if !artifacts.Result.Passed {
			return fmt.Errorf("validation failed with %d errors", artifacts.Result.ErrorCount)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateOutputDir, "output-dir", config.DefaultOutputDir, "Output directory for validation reports")
}

// runValidate parses and validates the plan, then writes all report
// artifacts. A plan file with zero task blocks is an input error, not a
// validation failure.
func runValidate(opts ValidateOptions) (ValidateArtifacts, error) {
	var artifacts ValidateArtifacts

	content, err := os.ReadFile(opts.PlanPath)
	if err != nil {
		return artifacts, fmt.Errorf("failed to read plan file: %w", err)
	}

	tasks, err := taskplan.Parse(string(content))
	if err != nil {
		if errors.Is(err, taskplan.ErrNoTasks) {
			return artifacts, fmt.Errorf("no tasks found in %s: %w", opts.PlanPath, err)
		}
		return artifacts, err
	}
	logger.Debug("parsed plan", "path", opts.PlanPath, "tasks", len(tasks))

	artifacts.Tasks = tasks
	artifacts.Result = taskplan.Validate(tasks)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return artifacts, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now()
	artifacts.JSONReport = filepath.Join(opts.OutputDir, "validation-report.json")
	artifacts.MarkdownPath = filepath.Join(opts.OutputDir, "validation-report.md")
	artifacts.ManifestPath = filepath.Join(opts.OutputDir, "manifest.json")

	if err := report.WriteJSON(artifacts.JSONReport, artifacts.Result); err != nil {
		return artifacts, err
	}
	if err := report.WriteFile(artifacts.MarkdownPath, []byte(report.Markdown(artifacts.Result, opts.PlanPath, now))); err != nil {
		return artifacts, err
	}

	runID, err := util.ShortID()
	if err != nil {
		return artifacts, fmt.Errorf("failed to generate run ID: %w", err)
	}

	outcome := "fail"
	if artifacts.Result.Passed {
		outcome = "pass"
	}
	manifest := report.Manifest{
		GeneratedAt: now,
		Tool:        "validate",
		RunID:       runID,
		Input:       opts.PlanPath,
		Files: []report.ManifestFile{
			{Path: artifacts.JSONReport, Type: report.TypeValidationReport, Format: report.FormatJSON},
			{Path: artifacts.MarkdownPath, Type: report.TypeValidationReport, Format: report.FormatMarkdown},
		},
		Result:   outcome,
		Errors:   artifacts.Result.ErrorCount,
		Warnings: artifacts.Result.WarningCount,
	}
	if err := report.WriteManifest(artifacts.ManifestPath, manifest); err != nil {
		return artifacts, err
	}
	logger.Debug("reports written", "dir", opts.OutputDir, "result", outcome)

	return artifacts, nil
}

// printValidateSummary prints the styled result summary, echoing every
// finding so the reports are optional reading.
func printValidateSummary(artifacts ValidateArtifacts) {
	result := artifacts.Result

	if result.Passed {
		fmt.Println(tui.SuccessStyle.Render("Validation PASSED"))
	} else {
		fmt.Println(tui.ErrorStyle.Render("Validation FAILED"))
	}
	fmt.Printf("  Tasks: %d\n", result.TotalTasks)
	fmt.Printf("  Errors: %d\n", result.ErrorCount)
	fmt.Printf("  Warnings: %d\n", result.WarningCount)

	if len(result.Issues) > 0 {
		fmt.Println()
		for _, f := range result.Issues {
			fmt.Printf("  %s %s\n", tui.ErrorStyle.Render("✗"), f.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
		for _, f := range result.Warnings {
			fmt.Printf("  %s %s\n", tui.WarningStyle.Render("!"), f.Message)
		}
	}

	fmt.Println()
	fmt.Printf("  Reports: %s\n", filepath.Dir(artifacts.ManifestPath))

	if result.Passed {
		if order := suggestedOrder(artifacts.Tasks); order != "" {
			fmt.Printf("  Execution order: %s\n", order)
		}
	}
}

// suggestedOrder returns a topological ordering of the plan's tasks, or
// "" when no usable order exists (dangling references are already
// reported as findings).
func suggestedOrder(tasks []taskplan.Task) string {
	if len(tasks) == 0 {
		return ""
	}
	order, err := taskplan.ExecutionOrder(tasks)
	if err != nil {
		return ""
	}
	parts := make([]string, len(order))
	for i, n := range order {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " -> ")
}
