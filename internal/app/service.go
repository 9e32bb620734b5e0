// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/http/api"
	jobqueue "github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/queue"
	workerpool "github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/worker"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/synthesis"
	"github.com/dakshpokar/UnifiedWebInsights/internal/pipeline"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// Service implements the API dependencies for the evaluation system.
// It owns the store, the job queue, the worker pool and the analysis
// pipeline, and mediates every submission and read.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	acquirer   pipeline.Acquirer
	reasoner   synthesis.Reasoner
	jobQueue   jobqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	analyzerTimeout time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithStore sets the evaluation store backing the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAnalyzerTimeout bounds how long each analyzer may run per page.
func WithAnalyzerTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.analyzerTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Service around the given page acquirer and reasoner,
// with default configuration unless overridden by options.
func New(acquirer pipeline.Acquirer, reasoner synthesis.Reasoner, opts ...Option) *Service {
	s := &Service{
		acquirer:        acquirer,
		reasoner:        reasoner,
		workerCount:     runtime.NumCPU() * 4,
		queueSize:       1024,
		analyzerTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting evaluation service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	pipe := pipeline.New(s.store, s.acquirer, s.reasoner,
		pipeline.WithAnalyzerTimeout(s.analyzerTimeout),
		pipeline.WithLogger(s.logger),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, pipe)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service, draining queued jobs first.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(ctx, "stopping evaluation service...")

	if s.workerPool != nil {
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool did not drain cleanly",
				logger.Error(err),
			)
		}
	}

	if closer, ok := s.store.(interface{ Close(context.Context) error }); ok {
		_ = closer.Close(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
}

// Submit creates an evaluation record and schedules it for analysis.
// The returned evaluation is already persisted in the processing state;
// callers poll the read operations to observe progress.
func (s *Service) Submit(ctx context.Context, url, userID string) (*model.Evaluation, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, fmt.Errorf("service not started")
	}

	ev := &model.Evaluation{
		ID:        uuid.NewString(),
		URL:       url,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Status:    model.StatusProcessing,
	}

	if err := s.store.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating evaluation record: %w", err)
	}

	if !s.jobQueue.Enqueue(ctx, jobqueue.Job{EvaluationID: ev.ID, URL: url}) {
		// The record exists but will never be processed; settle it so
		// pollers are not left waiting forever.
		_ = s.store.SetError(ctx, ev.ID, "evaluation queue is at capacity")
		return nil, fmt.Errorf("%w: evaluation queue is at capacity", api.ErrBackpressure)
	}

	metrics.RecordEvaluationStarted()
	s.logger.Debug(ctx, "evaluation submitted",
		logger.String("evaluationID", ev.ID),
		logger.String("url", url),
	)

	return ev, nil
}

// Evaluation returns the evaluation record with the given id.
func (s *Service) Evaluation(ctx context.Context, id string) (*model.Evaluation, error) {
	return s.store.Get(ctx, id)
}

// Stats reports service health counters for monitoring.
func (s *Service) Stats(ctx context.Context) api.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := api.Stats{}
	if s.started {
		stats.Evaluations = s.store.Count(ctx)
		stats.QueueDepth = s.jobQueue.Len(ctx)
		stats.Workers = s.workerPool.Size()

		metrics.UpdateQueueSize(stats.QueueDepth)
		metrics.UpdateWorkerCount(stats.Workers)
	}

	return stats
}
