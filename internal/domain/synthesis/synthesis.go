// Package synthesis is the join point of the pipeline: it folds the
// four analyzer results into a single narrative report produced by an
// external reasoning service. The stage never fails an evaluation; any
// transport or parse problem degrades into a report that says so.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// maxMarkupBytes bounds how much raw markup is embedded in the prompt.
const maxMarkupBytes = 12000

// Reasoner is the external reasoning service the stage delegates to.
type Reasoner interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ReasonerFunc adapts a plain function to the Reasoner interface.
type ReasonerFunc func(ctx context.Context, prompt string) (string, error)

func (f ReasonerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Input carries everything the reasoning service sees: the page, its
// artifacts, and the four completed analyzer results.
type Input struct {
	URL           string
	HTML          string
	Screenshot    string
	SEO           model.AnalysisResult
	Mobile        model.AnalysisResult
	Performance   model.AnalysisResult
	Accessibility model.AnalysisResult
}

// Stage runs the synthesis step of an evaluation.
type Stage struct {
	reasoner Reasoner
}

// New creates a synthesis stage backed by the given reasoning service.
func New(r Reasoner) *Stage {
	return &Stage{reasoner: r}
}

// Run produces a SynthesisReport. It always returns a report: a
// reasoning-service failure or an unparsable response yields a degraded
// report whose summary states what went wrong and whose Raw field keeps
// the verbatim response for debugging.
func (s *Stage) Run(ctx context.Context, in Input) model.SynthesisReport {
	start := time.Now()
	defer func() {
		metrics.RecordSynthesisLatency(time.Since(start).Seconds())
	}()

	raw, err := s.reasoner.Complete(ctx, buildPrompt(in))
	if err != nil {
		metrics.RecordSynthesisParseFailure()
		return model.SynthesisReport{
			Summary:         fmt.Sprintf("Synthesis unavailable: %v", err),
			Recommendations: []string{},
			Snippets:        map[string]string{},
			Timestamp:       time.Now().UTC(),
		}
	}

	report, perr := parseReport(raw)
	if perr != nil {
		metrics.RecordSynthesisParseFailure()
		return model.SynthesisReport{
			Summary:         fmt.Sprintf("The reasoning service returned a response that could not be parsed: %v", perr),
			Recommendations: []string{},
			Snippets:        map[string]string{},
			Raw:             raw,
			Timestamp:       time.Now().UTC(),
		}
	}

	report.Raw = raw
	report.Timestamp = time.Now().UTC()
	return report
}

// promptResults is the condensed per-dimension view embedded in the
// prompt: scores and issues only, not the full metric payloads.
type promptResults struct {
	Score  int           `json:"score"`
	Rating model.Rating  `json:"rating"`
	Issues []model.Issue `json:"issues"`
}

func condense(r model.AnalysisResult) promptResults {
	return promptResults{Score: r.Score, Rating: r.Rating, Issues: r.Issues}
}

func buildPrompt(in Input) string {
	findings, _ := json.MarshalIndent(map[string]promptResults{
		"seo":           condense(in.SEO),
		"mobile":        condense(in.Mobile),
		"performance":   condense(in.Performance),
		"accessibility": condense(in.Accessibility),
	}, "", "  ")

	markup := in.HTML
	if len(markup) > maxMarkupBytes {
		markup = markup[:maxMarkupBytes]
	}

	var sb strings.Builder
	sb.WriteString("You are a web quality consultant. A page was evaluated across four dimensions.\n\n")
	fmt.Fprintf(&sb, "URL: %s\n\nFINDINGS:\n%s\n\nPAGE MARKUP (may be truncated):\n%s\n\n", in.URL, findings, markup)
	sb.WriteString(`Respond with a single JSON object and nothing else, using exactly these keys:
{
  "summary": "two or three sentences describing the page's overall quality",
  "recommendations": ["highest-impact improvement first", "..."],
  "snippets": {"topic": "a short example snippet illustrating a fix"}
}`)
	return sb.String()
}

// parseReport decodes the model response, tolerating markdown code
// fences and surrounding prose around the JSON object.
func parseReport(raw string) (model.SynthesisReport, error) {
	text := stripFences(raw)

	// Models sometimes wrap the object in prose; take the outermost
	// braces when direct decoding fails.
	var payload struct {
		Summary         string            `json:"summary"`
		Recommendations []string          `json:"recommendations"`
		Snippets        map[string]string `json:"snippets"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		first := strings.Index(text, "{")
		last := strings.LastIndex(text, "}")
		if first == -1 || last <= first {
			return model.SynthesisReport{}, err
		}
		if err := json.Unmarshal([]byte(text[first:last+1]), &payload); err != nil {
			return model.SynthesisReport{}, err
		}
	}

	if payload.Summary == "" {
		return model.SynthesisReport{}, fmt.Errorf("response has no summary field")
	}
	if payload.Recommendations == nil {
		payload.Recommendations = []string{}
	}
	if payload.Snippets == nil {
		payload.Snippets = map[string]string{}
	}

	return model.SynthesisReport{
		Summary:         payload.Summary,
		Recommendations: payload.Recommendations,
		Snippets:        payload.Snippets,
	}, nil
}

// stripFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx != -1 && !strings.ContainsAny(s[:idx], "{}") {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
