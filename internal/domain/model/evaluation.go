package model

import "time"

// Status is the externally observable lifecycle state of an evaluation.
type Status string

// Evaluation statuses.
const (
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusErrored    Status = "errored"
)

// Snapshot holds the acquired page artifacts all analyzers share.
// Written once by acquisition and read-only thereafter.
type Snapshot struct {
	HTML       string    `json:"html" bson:"html"`
	Screenshot string    `json:"screenshot,omitempty" bson:"screenshot,omitempty"`
	FinalURL   string    `json:"final_url,omitempty" bson:"final_url,omitempty"`
	StatusCode int       `json:"status_code,omitempty" bson:"status_code,omitempty"`
	FetchedAt  time.Time `json:"fetched_at" bson:"fetched_at"`
}

// Evaluation is the root aggregate, one per submitted URL. The five
// analysis fields are absent until the corresponding stage completes
// and are never removed once present.
type Evaluation struct {
	ID        string    `json:"evaluationId" bson:"_id"`
	URL       string    `json:"url" bson:"url"`
	UserID    string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	CreatedAt time.Time `json:"timestamp" bson:"created_at"`
	Status    Status    `json:"status" bson:"status"`

	Snapshot *Snapshot `json:"site,omitempty" bson:"site,omitempty"`

	SEO           *AnalysisResult  `json:"seo_analysis,omitempty" bson:"seo_analysis,omitempty"`
	Mobile        *AnalysisResult  `json:"mobile_analysis,omitempty" bson:"mobile_analysis,omitempty"`
	Performance   *AnalysisResult  `json:"performance_analysis,omitempty" bson:"performance_analysis,omitempty"`
	Accessibility *AnalysisResult  `json:"accessibility_analysis,omitempty" bson:"accessibility_analysis,omitempty"`
	Synthesis     *SynthesisReport `json:"llm_analysis,omitempty" bson:"llm_analysis,omitempty"`

	// ErrorDetail is set only when the evaluation as a whole failed
	// outside analyzer containment.
	ErrorDetail string `json:"analysis_error,omitempty" bson:"analysis_error,omitempty"`
}

// HasResult reports whether the given dimension's result is present.
func (e *Evaluation) HasResult(d Dimension) bool {
	switch d {
	case DimensionSEO:
		return e.SEO != nil
	case DimensionMobile:
		return e.Mobile != nil
	case DimensionPerformance:
		return e.Performance != nil
	case DimensionAccessibility:
		return e.Accessibility != nil
	case DimensionSynthesis:
		return e.Synthesis != nil
	}
	return false
}

// Result returns the stored result for a dimension, or nil.
// Synthesis results are returned as *SynthesisReport, all others as
// *AnalysisResult.
func (e *Evaluation) Result(d Dimension) any {
	switch d {
	case DimensionSEO:
		if e.SEO != nil {
			return e.SEO
		}
	case DimensionMobile:
		if e.Mobile != nil {
			return e.Mobile
		}
	case DimensionPerformance:
		if e.Performance != nil {
			return e.Performance
		}
	case DimensionAccessibility:
		if e.Accessibility != nil {
			return e.Accessibility
		}
	case DimensionSynthesis:
		if e.Synthesis != nil {
			return e.Synthesis
		}
	}
	return nil
}

// CompletedDimensions lists the dimensions whose results are present,
// in report order.
func (e *Evaluation) CompletedDimensions() []Dimension {
	var out []Dimension
	for _, d := range AllDimensions() {
		if e.HasResult(d) {
			out = append(out, d)
		}
	}
	return out
}

// PendingDimensions lists the dimensions whose results are still absent,
// in report order.
func (e *Evaluation) PendingDimensions() []Dimension {
	var out []Dimension
	for _, d := range AllDimensions() {
		if !e.HasResult(d) {
			out = append(out, d)
		}
	}
	return out
}

// DeriveStatus computes the status the lifecycle invariant requires:
// errored iff an error detail is present, complete iff all five results
// are present, processing otherwise.
func (e *Evaluation) DeriveStatus() Status {
	if e.ErrorDetail != "" {
		return StatusErrored
	}
	if len(e.PendingDimensions()) == 0 {
		return StatusComplete
	}
	return StatusProcessing
}
