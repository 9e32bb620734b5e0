// Package repository defines the evaluation store interface and errors.
package repository

import (
	"context"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// Store provides read/write access to evaluation records. Writes are
// incremental: each pipeline transition persists only the fields it
// produced, so readers observe partial results while the pipeline runs.
type Store interface {
	// Create persists a new evaluation record in its initial state.
	Create(ctx context.Context, ev *model.Evaluation) error

	// Get returns the evaluation with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (*model.Evaluation, error)

	// SetSnapshot attaches the acquired page snapshot.
	SetSnapshot(ctx context.Context, id string, snap model.Snapshot) error

	// SetResult stores one analyzer dimension's result.
	SetResult(ctx context.Context, id string, dim model.Dimension, result model.AnalysisResult) error

	// SetSynthesis stores the synthesis report.
	SetSynthesis(ctx context.Context, id string, report model.SynthesisReport) error

	// MarkComplete transitions the record to the complete state.
	MarkComplete(ctx context.Context, id string) error

	// SetError transitions the record to the errored state with a
	// human-readable detail.
	SetError(ctx context.Context, id string, detail string) error

	// Count returns the number of evaluations tracked.
	Count(ctx context.Context) int
}
