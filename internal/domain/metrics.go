package domain

import (
	"math"
	"time"
)

// Weights is the fixed scoring policy for the overall score. It is
// configuration, not something derived from the data.
type Weights struct {
	Tokens     float64 `json:"tokens" yaml:"tokens"`
	Components float64 `json:"components" yaml:"components"`
}

// DefaultWeights weighs token adoption 55% and component coverage 45%
var DefaultWeights = Weights{Tokens: 0.55, Components: 0.45}

// Score combines token adoption and component coverage
func (w Weights) Score(tokenAdoption, componentCoverage float64) float64 {
	return clampPercent(tokenAdoption*w.Tokens + componentCoverage*w.Components)
}

// Percent returns part/total*100, or 0 when total is 0
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clampPercent(float64(part) / float64(total) * 100)
}

// Coverage is the share of library instances among counted instances
func Coverage(libraryCount, localCount int) float64 {
	return Percent(libraryCount, libraryCount+localCount)
}

// TokenAdoption is the share of token-bound properties among all scored
// properties. It is property level: an instance with five properties and
// one bound contributes 20%.
func TokenAdoption(tokenBound, hardcoded int) float64 {
	return Percent(tokenBound, tokenBound+hardcoded)
}

// OverallScore combines both metrics under DefaultWeights
func OverallScore(tokenAdoption, componentCoverage float64) float64 {
	return DefaultWeights.Score(tokenAdoption, componentCoverage)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Summary holds the headline numbers derived from instance rows
type Summary struct {
	LibraryCount    int         `json:"libraryCount"`
	LocalCount      int         `json:"localCount"`
	PerSourceCounts []Breakdown `json:"perSourceCounts"`
	PerComponent    []Breakdown `json:"perComponent"`

	TokenBound      PropertyCounts `json:"tokenBound"`
	Hardcoded       PropertyCounts `json:"hardcoded"`
	TokenBoundTotal int            `json:"tokenBoundTotal"`
	HardcodedTotal  int            `json:"hardcodedTotal"`

	ComponentCoverage float64 `json:"componentCoverage"`
	TokenAdoption     float64 `json:"tokenAdoption"`
	OverallScore      float64 `json:"overallScore"`
}

// FilteredMetrics is a Summary recomputed under ignore sets
type FilteredMetrics struct {
	Summary
	IgnoredRows     int `json:"ignoredRows"`
	IgnoredOrphans  int `json:"ignoredOrphans"`
	IgnoredKeyCount int `json:"ignoredKeyCount"`
}

// CoverageMetrics is the full result of one analysis run
type CoverageMetrics struct {
	RunID       string    `json:"runId"`
	Document    string    `json:"document"`
	DocumentKey string    `json:"documentKey"`
	AnalyzedAt  time.Time `json:"analyzedAt"`

	SelectionSize int `json:"selectionSize"`
	InstanceCount int `json:"instanceCount"`
	HiddenSkipped int `json:"hiddenSkipped"`
	WrapperCount  int `json:"wrapperCount"`

	Summary
	Weights   Weights       `json:"weights"`
	Variables VariableUsage `json:"variables"`
	Rows      []InstanceRow `json:"rows"`
}

// Progress reports how far an analysis got
type Progress struct {
	Phase     string `json:"phase"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// Fraction returns Processed/Total in [0,1]
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return math.Min(1, float64(p.Processed)/float64(p.Total))
}
