// Package analyzer holds the heuristic engines that turn a parsed page
// into a bounded score, a rating band, and a structured issue list, one
// per quality dimension.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// DefaultTimeout bounds a single analyzer run. Markup complexity is
// author-controlled, so an analyzer exceeding the bound degrades to an
// Error-rated result instead of stalling the pipeline.
const DefaultTimeout = 10 * time.Second

// Page is the immutable input every analyzer shares: the acquired
// markup, an optional rendered screenshot, and the page URL.
type Page struct {
	URL        string
	HTML       string
	Screenshot string
}

// Analyzer computes one quality dimension's result. Implementations are
// pure functions of the page: identical inputs yield identical scores,
// ratings, and issues.
type Analyzer interface {
	Dimension() model.Dimension
	Analyze(ctx context.Context, page Page) model.AnalysisResult
}

// Run executes one analyzer with full fault containment: a panic or a
// timeout inside the analyzer is converted into an Error-rated result
// so that no failure escapes to the orchestrator.
func Run(ctx context.Context, a Analyzer, page Page, timeout time.Duration) model.AnalysisResult {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	start := time.Now()
	dim := a.Dimension()

	done := make(chan model.AnalysisResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- ErrorResult(dim, start, fmt.Errorf("panic: %v", r))
			}
		}()
		done <- a.Analyze(ctx, page)
	}()

	var result model.AnalysisResult
	select {
	case result = <-done:
	case <-time.After(timeout):
		result = ErrorResult(dim, start, fmt.Errorf("analysis exceeded %s timeout", timeout))
	case <-ctx.Done():
		result = ErrorResult(dim, start, ctx.Err())
	}

	metrics.RecordAnalyzerDuration(string(dim), time.Since(start).Seconds())
	if result.Rating == model.RatingError {
		metrics.RecordAnalyzerError(string(dim))
	}
	return result
}

// ErrorResult builds the degraded result an analyzer returns when it
// fails internally: zero score, Error rating, one critical issue.
func ErrorResult(d model.Dimension, start time.Time, err error) model.AnalysisResult {
	return model.AnalysisResult{
		Score:  0,
		Rating: model.RatingError,
		Issues: []model.Issue{{
			Severity: model.SeverityCritical,
			Message:  fmt.Sprintf("Error analyzing %s: %v", d, err),
		}},
		ExecutionTime: time.Since(start).Seconds(),
		Timestamp:     time.Now().UTC(),
	}
}

// finish stamps the shared envelope fields on a successful result.
func finish(score int, issues []model.Issue, m any, start time.Time) model.AnalysisResult {
	score = model.ClampScore(score)
	if issues == nil {
		issues = []model.Issue{}
	}
	return model.AnalysisResult{
		Score:         score,
		Rating:        model.RatingForScore(score),
		Issues:        issues,
		Metrics:       m,
		ExecutionTime: time.Since(start).Seconds(),
		Timestamp:     time.Now().UTC(),
	}
}
