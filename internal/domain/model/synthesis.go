package model

import "time"

// SynthesisReport is the outcome of the synthesis stage. When the
// reasoning service returns unparsable output the report degrades:
// Summary explains the parse failure and Raw retains the verbatim text.
type SynthesisReport struct {
	Summary         string            `json:"summary" bson:"summary"`
	Recommendations []string          `json:"recommendations" bson:"recommendations"`
	Snippets        map[string]string `json:"snippets,omitempty" bson:"snippets,omitempty"`
	Raw             string            `json:"raw,omitempty" bson:"raw,omitempty"`
	Timestamp       time.Time         `json:"timestamp" bson:"timestamp"`
}
