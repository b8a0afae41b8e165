package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/plankit/internal/config"
	"github.com/pablasso/plankit/internal/generate"
	"github.com/pablasso/plankit/internal/report"
	"github.com/pablasso/plankit/internal/taskplan"
	"github.com/pablasso/plankit/internal/tui"
	"github.com/pablasso/plankit/internal/util"
)

var (
	decomposeInput       string
	decomposeObjective   string
	decomposeFeatureName string
	decomposeStrategy    string
	decomposeOutputDir   string
)

// DecomposeOptions holds the options for the decompose command.
type DecomposeOptions struct {
	InputPath   string
	Objective   string
	FeatureName string
	Strategy    string
	OutputDir   string
}

// DecomposeArtifacts describes what a decompose run produced.
type DecomposeArtifacts struct {
	PlanPath     string
	ProgressPath string
	ManifestPath string
	TotalTasks   int
}

var decomposeCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Decompose an objective into a task plan",
	Long:  `Decompose takes an objective, either from a JSON file or from flags, and generates a task_plan.md with tasks sized for independent execution, plus a progress.md tracker and a manifest of produced files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts := DecomposeOptions{
			InputPath:   decomposeInput,
			Objective:   decomposeObjective,
			FeatureName: decomposeFeatureName,
			Strategy:    cfg.Strategy,
			OutputDir:   cfg.OutputDir,
		}
		if cmd.Flags().Changed("strategy") {
			opts.Strategy = decomposeStrategy
		}
		if cmd.Flags().Changed("output-dir") {
			opts.OutputDir = decomposeOutputDir
		}

		artifacts, err := runDecompose(opts)
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("Generated %d tasks", artifacts.TotalTasks)))
		fmt.Printf("  Plan: %s\n", artifacts.PlanPath)
		fmt.Printf("  Progress: %s\n", artifacts.ProgressPath)
		fmt.Printf("  Manifest: %s\n", artifacts.ManifestPath)
		return nil
	},
}

func init() {
	decomposeCmd.Flags().StringVar(&decomposeInput, "input", "", "Path to an objective JSON file")
	decomposeCmd.Flags().StringVar(&decomposeObjective, "objective", "", "Objective text (alternative to --input)")
	decomposeCmd.Flags().StringVar(&decomposeFeatureName, "feature-name", "", "Feature name for the generated plan")
	decomposeCmd.Flags().StringVar(&decomposeStrategy, "strategy", config.DefaultStrategy, "Decomposition strategy: layer-based, feature-first, or migration")
	decomposeCmd.Flags().StringVar(&decomposeOutputDir, "output-dir", config.DefaultOutputDir, "Output directory for generated files")
}

// runDecompose builds the objective, renders the plan and progress
// documents, and writes them with a manifest.
func runDecompose(opts DecomposeOptions) (DecomposeArtifacts, error) {
	var artifacts DecomposeArtifacts

	obj, err := resolveObjective(opts)
	if err != nil {
		return artifacts, err
	}

	if _, err := generate.ParseStrategy(obj.Strategy); err != nil {
		return artifacts, err
	}

	now := time.Now()
	plan, total := generate.TaskPlan(obj, now)
	artifacts.TotalTasks = total
	logger.Debug("decomposed objective", "strategy", obj.Strategy, "tasks", total)

	// The generated plan must satisfy its own parser.
	tasks, err := taskplan.Parse(plan)
	if err != nil {
		return artifacts, fmt.Errorf("generated plan failed to parse: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return artifacts, fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts.PlanPath = filepath.Join(opts.OutputDir, "task_plan.md")
	artifacts.ProgressPath = filepath.Join(opts.OutputDir, "progress.md")
	artifacts.ManifestPath = filepath.Join(opts.OutputDir, "manifest.json")

	if err := report.WriteFile(artifacts.PlanPath, []byte(plan)); err != nil {
		return artifacts, err
	}

	progress := generate.Progress(tasks[0].Title, total, now)
	if err := report.WriteFile(artifacts.ProgressPath, []byte(progress)); err != nil {
		return artifacts, err
	}

	runID, err := util.ShortID()
	if err != nil {
		return artifacts, fmt.Errorf("failed to generate run ID: %w", err)
	}

	feature := obj.FeatureName
	if feature == "" {
		feature = generate.DefaultFeatureName
	}
	manifest := report.Manifest{
		GeneratedAt: now,
		Tool:        "decompose",
		RunID:       runID,
		Input:       opts.InputPath,
		Strategy:    obj.Strategy,
		Feature:     feature,
		Files: []report.ManifestFile{
			{Path: artifacts.PlanPath, Type: report.TypeTaskPlan, Format: report.FormatMarkdown},
			{Path: artifacts.ProgressPath, Type: report.TypeProgress, Format: report.FormatMarkdown},
		},
		TotalTasks: total,
	}
	if err := report.WriteManifest(artifacts.ManifestPath, manifest); err != nil {
		return artifacts, err
	}

	return artifacts, nil
}

// resolveObjective builds the objective from the JSON input file when
// given, otherwise from the flags. One of the two is required.
func resolveObjective(opts DecomposeOptions) (*generate.Objective, error) {
	if opts.InputPath != "" {
		obj, err := generate.LoadObjective(opts.InputPath)
		if err != nil {
			return nil, err
		}
		if obj.Strategy == "" {
			obj.Strategy = opts.Strategy
		}
		return obj, nil
	}
	if opts.Objective == "" {
		return nil, fmt.Errorf("either --input or --objective is required")
	}
	return &generate.Objective{
		FeatureName: opts.FeatureName,
		Objective:   opts.Objective,
		Strategy:    opts.Strategy,
	}, nil
}
