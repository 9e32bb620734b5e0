// Package model contains domain models passed between layers.
package model

import "time"

// Severity classifies how strongly an issue affects the dimension's score.
type Severity string

// Issue severities, ordered from most to least impactful.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Issue explains a single deduction (or observation) made by an analyzer.
// Issues never block score computation; they are the explanation artifact.
type Issue struct {
	Severity Severity `json:"severity" bson:"severity"`
	Message  string   `json:"message" bson:"message"`
}

// Rating is the qualitative band derived from a numeric score.
type Rating string

// Rating bands. Error overrides the numeric band when the analyzer
// itself failed internally.
const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingVeryPoor  Rating = "Very Poor"
	RatingError     Rating = "Error"
)

// Rating band thresholds.
const (
	excellentThreshold = 90
	goodThreshold      = 80
	fairThreshold      = 60
	poorThreshold      = 40
)

// RatingForScore maps a numeric score to its rating band.
func RatingForScore(score int) Rating {
	switch {
	case score >= excellentThreshold:
		return RatingExcellent
	case score >= goodThreshold:
		return RatingGood
	case score >= fairThreshold:
		return RatingFair
	case score >= poorThreshold:
		return RatingPoor
	default:
		return RatingVeryPoor
	}
}

// ClampScore bounds a score to the [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AnalysisResult is the uniform envelope returned by every analyzer call.
// It is constructed atomically and never mutated after construction.
type AnalysisResult struct {
	Score  int     `json:"score" bson:"score"`
	Rating Rating  `json:"rating" bson:"rating"`
	Issues []Issue `json:"issues" bson:"issues"`

	// Metrics holds the analyzer-specific measurements the score was
	// derived from. Each analyzer uses its own typed metrics struct.
	Metrics any `json:"metrics,omitempty" bson:"metrics,omitempty"`

	ExecutionTime float64   `json:"execution_time" bson:"execution_time"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// Dimension names one quality dimension of an evaluation.
type Dimension string

// The five dimensions an evaluation tracks.
const (
	DimensionSEO           Dimension = "seo"
	DimensionMobile        Dimension = "mobile"
	DimensionPerformance   Dimension = "performance"
	DimensionAccessibility Dimension = "accessibility"
	DimensionSynthesis     Dimension = "synthesis"
)

// AnalyzerDimensions lists the four concurrent heuristic analyzers.
// Synthesis is excluded; it runs after all four as a join point.
func AnalyzerDimensions() []Dimension {
	return []Dimension{
		DimensionSEO,
		DimensionMobile,
		DimensionPerformance,
		DimensionAccessibility,
	}
}

// AllDimensions lists every result key an evaluation must carry to be
// considered complete, in report order.
func AllDimensions() []Dimension {
	return append(AnalyzerDimensions(), DimensionSynthesis)
}

// ResultKey returns the persisted document key for a dimension.
func (d Dimension) ResultKey() string {
	if d == DimensionSynthesis {
		return "llm_analysis"
	}
	return string(d) + "_analysis"
}
