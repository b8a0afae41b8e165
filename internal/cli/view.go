package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/plankit/internal/taskplan"
	"github.com/pablasso/plankit/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <task_plan.md>",
	Short: "Browse a task plan interactively",
	Long:  `View opens a task plan in an interactive terminal browser. Tasks are listed with their validation findings; the detail pane shows files, preconditions, and completion criteria for the selected task.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read plan file: %w", err)
		}

		tasks, err := taskplan.Parse(string(content))
		if err != nil {
			if errors.Is(err, taskplan.ErrNoTasks) {
				return fmt.Errorf("no tasks found in %s: %w", args[0], err)
			}
			return err
		}

		return tui.Run(tasks, args[0])
	},
}
