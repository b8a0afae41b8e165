package taskplan

// Task represents a single task block parsed from a task plan document.
// Tasks are read-only values: they are built once per run by Parse and
// never mutated afterwards.
type Task struct {
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Files         []string `json:"files"`
	Preconditions []int    `json:"preconditions"`
	DoneWhen      string   `json:"done_when"`
	Complexity    string   `json:"complexity"`
	Parallel      string   `json:"parallel"`
	HasSteps      bool     `json:"has_steps"`
}

// Complexity labels accepted by the complexity rule, in canonical order.
const (
	ComplexityTrivial = "trivial"
	ComplexitySmall   = "small"
	ComplexityMedium  = "medium"
	ComplexityLarge   = "large"
)

// ValidComplexities lists the standard complexity labels.
var ValidComplexities = []string{
	ComplexityTrivial,
	ComplexitySmall,
	ComplexityMedium,
	ComplexityLarge,
}

// IsValidComplexity reports whether label is one of the standard
// complexity labels.
func IsValidComplexity(label string) bool {
	for _, c := range ValidComplexities {
		if label == c {
			return true
		}
	}
	return false
}
