// Package generate renders plan documents: decomposed task plans,
// progress trackers, and implementation-plan documents.
package generate

import (
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Objective is the structured input for task decomposition.
type Objective struct {
	FeatureName string   `json:"feature_name"`
	Objective   string   `json:"objective"`
	Strategy    string   `json:"strategy"`
	Layers      []string `json:"layers"`
	Constraints []string `json:"constraints"`
}

// DefaultFeatureName is used when the objective does not name a feature.
const DefaultFeatureName = "Unnamed Feature"

const objectiveSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "plankit objective",
  "type": "object",
  "properties": {
    "feature_name": {"type": "string"},
    "objective": {"type": "string"},
    "strategy": {"type": "string", "enum": ["layer-based", "feature-first", "migration"]},
    "layers": {"type": "array", "items": {"type": "string"}},
    "constraints": {"type": "array", "items": {"type": "string"}}
  }
}`

var objectiveSchema = jsonschema.MustCompileString("objective.schema.json", objectiveSchemaJSON)

// LoadObjective reads an objective JSON file and validates it against the
// objective schema before decoding.
func LoadObjective(path string) (*Objective, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read objective file: %w", err)
	}

	if err := ValidateObjective(data); err != nil {
		return nil, err
	}

	var obj Objective
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse objective JSON: %w", err)
	}
	return &obj, nil
}

// ValidateObjective checks raw objective JSON against the schema.
func ValidateObjective(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid objective JSON: %w", err)
	}
	if err := objectiveSchema.Validate(doc); err != nil {
		return fmt.Errorf("objective does not match schema: %w", err)
	}
	return nil
}
