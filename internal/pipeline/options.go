package pipeline

import (
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/analyzer"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithAnalyzers replaces the standard analyzer set.
func WithAnalyzers(analyzers ...analyzer.Analyzer) Option {
	return func(p *Pipeline) {
		if len(analyzers) > 0 {
			p.analyzers = analyzers
		}
	}
}

// WithAnalyzerTimeout bounds each analyzer run.
func WithAnalyzerTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) {
		if timeout > 0 {
			p.analyzerTimeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}
