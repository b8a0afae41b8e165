package generate

import "fmt"

// Strategy selects how an objective is decomposed into tasks.
type Strategy string

const (
	StrategyLayerBased   Strategy = "layer-based"
	StrategyFeatureFirst Strategy = "feature-first"
	StrategyMigration    Strategy = "migration"
)

// ParseStrategy converts a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyLayerBased, StrategyFeatureFirst, StrategyMigration:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("invalid strategy %q (expected layer-based, feature-first, or migration)", s)
	}
}
