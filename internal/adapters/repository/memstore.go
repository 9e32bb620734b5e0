package repository

import (
	"context"
	"sync"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// MemStore is an in-memory Store for tests and credential-free local
// runs. All operations are safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*model.Evaluation
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]*model.Evaluation)}
}

func (s *MemStore) Create(_ context.Context, ev *model.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[ev.ID]; exists {
		return ErrDuplicateID
	}
	cp := *ev
	s.records[ev.ID] = &cp
	return nil
}

func (s *MemStore) Get(_ context.Context, id string) (*model.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *ev
	// The lifecycle invariant holds at every read, even if a transition
	// write raced or was skipped.
	cp.Status = cp.DeriveStatus()
	return &cp, nil
}

func (s *MemStore) SetSnapshot(_ context.Context, id string, snap model.Snapshot) error {
	return s.update(id, func(ev *model.Evaluation) {
		ev.Snapshot = &snap
	})
}

func (s *MemStore) SetResult(_ context.Context, id string, dim model.Dimension, result model.AnalysisResult) error {
	return s.update(id, func(ev *model.Evaluation) {
		switch dim {
		case model.DimensionSEO:
			ev.SEO = &result
		case model.DimensionMobile:
			ev.Mobile = &result
		case model.DimensionPerformance:
			ev.Performance = &result
		case model.DimensionAccessibility:
			ev.Accessibility = &result
		}
	})
}

func (s *MemStore) SetSynthesis(_ context.Context, id string, report model.SynthesisReport) error {
	return s.update(id, func(ev *model.Evaluation) {
		ev.Synthesis = &report
	})
}

func (s *MemStore) MarkComplete(_ context.Context, id string) error {
	return s.update(id, func(ev *model.Evaluation) {
		ev.Status = model.StatusComplete
	})
}

func (s *MemStore) SetError(_ context.Context, id string, detail string) error {
	return s.update(id, func(ev *model.Evaluation) {
		ev.Status = model.StatusErrored
		ev.ErrorDetail = detail
	})
}

func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemStore) update(id string, mutate func(*model.Evaluation)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	mutate(ev)
	return nil
}
