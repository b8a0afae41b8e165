package report

import (
	"encoding/json"
	"fmt"

	"github.com/pablasso/plankit/internal/taskplan"
)

// WriteJSON writes the validation result as 2-space-indented JSON.
func WriteJSON(path string, result taskplan.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation result: %w", err)
	}
	return WriteFile(path, append(data, '\n'))
}
