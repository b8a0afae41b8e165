package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/plankit/internal/config"
	"github.com/pablasso/plankit/internal/generate"
	"github.com/pablasso/plankit/internal/report"
	"github.com/pablasso/plankit/internal/tui"
	"github.com/pablasso/plankit/internal/util"
)

var (
	planObjective     string
	planComplexity    string
	planAuthor        string
	planBackendFiles  []string
	planFrontendFiles []string
	planTasks         []string
	planRisks         []string
	planHasMigration  bool
	planHasRSC        bool
	planFormat        string
	planOutputDir     string
)

// PlanOptions holds the options for the plan command.
type PlanOptions struct {
	FeatureName string
	Params      generate.PlanDocParams
	Format      string
	OutputDir   string
}

// PlanArtifacts describes what a plan run produced.
type PlanArtifacts struct {
	MarkdownPath string
	JSONPath     string
	ManifestPath string
}

var planCmd = &cobra.Command{
	Use:   "plan <feature>",
	Short: "Generate an implementation plan document",
	Long:  `Plan renders an implementation-plan document for a feature: metadata, objective, affected modules with inferred layers, a numbered task list, a dependency graph, risk assessment, and acceptance criteria. It writes markdown, JSON, or both.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts := PlanOptions{
			FeatureName: args[0],
			Params: generate.PlanDocParams{
				FeatureName:   args[0],
				Objective:     planObjective,
				Complexity:    planComplexity,
				Author:        planAuthor,
				BackendFiles:  planBackendFiles,
				FrontendFiles: planFrontendFiles,
				Tasks:         planTasks,
				Risks:         planRisks,
				HasMigration:  planHasMigration,
				HasRSC:        planHasRSC,
			},
			Format:    cfg.Format,
			OutputDir: cfg.OutputDir,
		}
		if cmd.Flags().Changed("format") {
			opts.Format = planFormat
		}
		if cmd.Flags().Changed("output-dir") {
			opts.OutputDir = planOutputDir
		}

		artifacts, err := runPlan(opts)
		if err != nil {
			return err
		}

		fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf("Plan generated for %q", opts.FeatureName)))
		if artifacts.MarkdownPath != "" {
			fmt.Printf("  Markdown: %s\n", artifacts.MarkdownPath)
		}
		if artifacts.JSONPath != "" {
			fmt.Printf("  JSON: %s\n", artifacts.JSONPath)
		}
		fmt.Printf("  Manifest: %s\n", artifacts.ManifestPath)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planObjective, "objective", "", "Objective statement for the plan (required)")
	planCmd.Flags().StringVar(&planComplexity, "complexity", "medium", "Overall complexity: trivial, small, medium, or large")
	planCmd.Flags().StringVar(&planAuthor, "author", "", "Plan author")
	planCmd.Flags().StringSliceVar(&planBackendFiles, "backend-files", nil, "Backend files affected by the feature")
	planCmd.Flags().StringSliceVar(&planFrontendFiles, "frontend-files", nil, "Frontend files affected by the feature")
	planCmd.Flags().StringSliceVar(&planTasks, "tasks", nil, "Task titles in execution order")
	planCmd.Flags().StringSliceVar(&planRisks, "risks", nil, "Known risks")
	planCmd.Flags().BoolVar(&planHasMigration, "has-migration", false, "Feature includes a database migration")
	planCmd.Flags().BoolVar(&planHasRSC, "has-rsc", false, "Feature includes React Server Components")
	planCmd.Flags().StringVar(&planFormat, "format", config.DefaultFormat, "Output format: markdown, json, or both")
	planCmd.MarkFlagRequired("objective")
}

// runPlan renders the implementation plan in the requested formats and
// writes a manifest alongside.
func runPlan(opts PlanOptions) (PlanArtifacts, error) {
	var artifacts PlanArtifacts

	format := strings.ToLower(opts.Format)
	switch format {
	case "markdown", "json", "both":
	default:
		return artifacts, fmt.Errorf("unknown format %q (use markdown, json, or both)", opts.Format)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return artifacts, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now()
	slug := util.ToKebabCase(opts.FeatureName)
	var files []report.ManifestFile

	if format == "markdown" || format == "both" {
		artifacts.MarkdownPath = filepath.Join(opts.OutputDir, fmt.Sprintf("plan-%s.md", slug))
		doc := generate.PlanDoc(opts.Params, now)
		if err := report.WriteFile(artifacts.MarkdownPath, []byte(doc)); err != nil {
			return artifacts, err
		}
		files = append(files, report.ManifestFile{
			Path:   artifacts.MarkdownPath,
			Type:   report.TypePlanDocument,
			Format: report.FormatMarkdown,
		})
	}

	if format == "json" || format == "both" {
		artifacts.JSONPath = filepath.Join(opts.OutputDir, fmt.Sprintf("plan-%s.json", slug))
		doc := generate.PlanDocJSON(opts.Params, now)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return artifacts, fmt.Errorf("failed to marshal plan document: %w", err)
		}
		if err := report.WriteFile(artifacts.JSONPath, append(data, '\n')); err != nil {
			return artifacts, err
		}
		files = append(files, report.ManifestFile{
			Path:   artifacts.JSONPath,
			Type:   report.TypePlanDocument,
			Format: report.FormatJSON,
		})
	}
	logger.Debug("plan rendered", "feature", opts.FeatureName, "format", format)

	runID, err := util.ShortID()
	if err != nil {
		return artifacts, fmt.Errorf("failed to generate run ID: %w", err)
	}

	artifacts.ManifestPath = filepath.Join(opts.OutputDir, "manifest.json")
	manifest := report.Manifest{
		GeneratedAt: now,
		Tool:        "plan",
		RunID:       runID,
		Feature:     opts.FeatureName,
		Files:       files,
	}
	if err := report.WriteManifest(artifacts.ManifestPath, manifest); err != nil {
		return artifacts, err
	}

	return artifacts, nil
}
