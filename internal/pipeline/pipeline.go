// Package pipeline implements the evaluation state machine: acquire
// the page, fan the four analyzers out in parallel, join on synthesis,
// and persist each transition as it happens.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/queue"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/analyzer"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/synthesis"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// Acquirer fetches the page artifacts an evaluation starts from.
type Acquirer interface {
	Acquire(ctx context.Context, url string) (model.Snapshot, error)
}

// Pipeline runs one evaluation per job. A Pipeline is safe for
// concurrent use; all per-evaluation state is local to Run.
type Pipeline struct {
	store           repository.Store
	acquirer        Acquirer
	analyzers       []analyzer.Analyzer
	synth           *synthesis.Stage
	analyzerTimeout time.Duration
	logger          logger.Logger
}

// New creates a pipeline with the standard four analyzers.
func New(store repository.Store, acquirer Acquirer, reasoner synthesis.Reasoner, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:    store,
		acquirer: acquirer,
		analyzers: []analyzer.Analyzer{
			analyzer.NewSEO(),
			analyzer.NewMobile(),
			analyzer.NewPerformance(),
			analyzer.NewAccessibility(),
		},
		synth:           synthesis.New(reasoner),
		analyzerTimeout: analyzer.DefaultTimeout,
		logger:          logger.Get().Named("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full state machine for one job. Analyzer failures
// are contained as Error-rated results and synthesis degrades
// internally, so only acquisition or persistence failures move the
// record to the errored state.
func (p *Pipeline) Run(ctx context.Context, job queue.Job) error {
	start := time.Now()

	snap, err := p.acquirer.Acquire(ctx, job.URL)
	if err != nil {
		p.fail(ctx, job.EvaluationID, fmt.Errorf("acquiring page: %w", err))
		return fmt.Errorf("acquiring page: %w", err)
	}
	if err := p.store.SetSnapshot(ctx, job.EvaluationID, snap); err != nil {
		p.fail(ctx, job.EvaluationID, fmt.Errorf("persisting snapshot: %w", err))
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	page := analyzer.Page{
		URL:        job.URL,
		HTML:       snap.HTML,
		Screenshot: snap.Screenshot,
	}

	// Analyzer fan-out. Each result is persisted the moment it exists
	// so pollers see partial progress.
	results := make(map[model.Dimension]model.AnalysisResult, len(p.analyzers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, a := range p.analyzers {
		wg.Add(1)
		go func(a analyzer.Analyzer) {
			defer wg.Done()

			result := analyzer.Run(ctx, a, page, p.analyzerTimeout)

			mu.Lock()
			results[a.Dimension()] = result
			mu.Unlock()

			if err := p.store.SetResult(ctx, job.EvaluationID, a.Dimension(), result); err != nil {
				p.logger.Error(ctx, "persisting analyzer result failed",
					logger.String("evaluationID", job.EvaluationID),
					logger.String("dimension", string(a.Dimension())),
					logger.Error(err),
				)
			}
		}(a)
	}
	wg.Wait()

	// Synthesis joins on all four results and never fails the
	// evaluation.
	report := p.synth.Run(ctx, synthesis.Input{
		URL:           job.URL,
		HTML:          snap.HTML,
		Screenshot:    snap.Screenshot,
		SEO:           results[model.DimensionSEO],
		Mobile:        results[model.DimensionMobile],
		Performance:   results[model.DimensionPerformance],
		Accessibility: results[model.DimensionAccessibility],
	})
	if err := p.store.SetSynthesis(ctx, job.EvaluationID, report); err != nil {
		p.fail(ctx, job.EvaluationID, fmt.Errorf("persisting synthesis report: %w", err))
		return fmt.Errorf("persisting synthesis report: %w", err)
	}

	if err := p.store.MarkComplete(ctx, job.EvaluationID); err != nil {
		p.fail(ctx, job.EvaluationID, fmt.Errorf("marking evaluation complete: %w", err))
		return fmt.Errorf("marking evaluation complete: %w", err)
	}

	metrics.RecordEvaluationCompleted()
	metrics.RecordPipelineDuration(time.Since(start).Seconds())
	p.logger.Info(ctx, "evaluation complete",
		logger.String("evaluationID", job.EvaluationID),
		logger.String("url", job.URL),
		logger.Float64("duration_seconds", time.Since(start).Seconds()),
	)
	return nil
}

// fail moves the record to the errored state. The persistence attempt
// is best effort: if the store is the failing collaborator there is
// nothing further to do but log.
func (p *Pipeline) fail(ctx context.Context, id string, cause error) {
	metrics.RecordEvaluationErrored()
	p.logger.Error(ctx, "evaluation failed",
		logger.String("evaluationID", id),
		logger.Error(cause),
	)
	if err := p.store.SetError(ctx, id, cause.Error()); err != nil {
		p.logger.Error(ctx, "persisting error state failed",
			logger.String("evaluationID", id),
			logger.Error(err),
		)
	}
}
