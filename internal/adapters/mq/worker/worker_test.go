package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/queue"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/worker"
	logging "github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	close(mq.jobChan)
	return nil
}

func (mq *mockQueue) addJob(job queue.Job) {
	mq.jobChan <- job
}

type mockRunner struct {
	mu     sync.RWMutex
	ran    map[string]int
	errors map[string]error
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		ran:    make(map[string]int),
		errors: make(map[string]error),
	}
}

func (mr *mockRunner) Run(_ context.Context, job queue.Job) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	mr.ran[job.EvaluationID]++
	if err, exists := mr.errors[job.EvaluationID]; exists {
		return err
	}
	return nil
}

func (mr *mockRunner) setError(id string, err error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.errors[id] = err
}

func (mr *mockRunner) runCount(id string) int {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.ran[id]
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		mq := newMockQueue()
		runner := newMockRunner()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(mq, runner)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(mq, runner, worker.WithName("test-worker"))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when jobs arrive", func() {
				mq.addJob(queue.Job{EvaluationID: "ev-1", URL: "https://a.example/"})
				mq.addJob(queue.Job{EvaluationID: "ev-2", URL: "https://b.example/"})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then each job's pipeline runs exactly once", func() {
					convey.So(runner.runCount("ev-1"), convey.ShouldEqual, 1)
					convey.So(runner.runCount("ev-2"), convey.ShouldEqual, 1)
				})
			})

			convey.Convey("And when a pipeline fails", func() {
				runner.setError("ev-bad", errors.New("acquisition failed"))
				mq.addJob(queue.Job{EvaluationID: "ev-bad"})
				mq.addJob(queue.Job{EvaluationID: "ev-after"})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the worker keeps draining the queue", func() {
					convey.So(runner.runCount("ev-bad"), convey.ShouldEqual, 1)
					convey.So(runner.runCount("ev-after"), convey.ShouldEqual, 1)
				})
			})

			convey.Convey("And when the worker is shut down", func() {
				err := w.Shutdown(context.Background())

				convey.Convey("Then it stops cleanly", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		mq := newMockQueue()
		runner := newMockRunner()
		pool := worker.NewPool(3, mq, runner)

		convey.Convey("Then it holds the requested number of workers", func() {
			convey.So(pool.Size(), convey.ShouldEqual, 3)
		})

		convey.Convey("When the pool is started", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(10 * time.Millisecond)

			for i := 0; i < 9; i++ {
				mq.addJob(queue.Job{EvaluationID: "ev-" + string(rune('a'+i))})
			}
			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then jobs are spread across workers and all run", func() {
				total := 0
				for i := 0; i < 9; i++ {
					total += runner.runCount("ev-" + string(rune('a'+i)))
				}
				convey.So(total, convey.ShouldEqual, 9)
			})

			convey.Convey("And shutdown closes the queue and drains workers", func() {
				err := pool.Shutdown(context.Background())
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("And a bare stop halts workers without closing the queue", func() {
				pool.Stop()

				mq.addJob(queue.Job{EvaluationID: "ev-late"})
				time.Sleep(50 * time.Millisecond)
				convey.So(runner.runCount("ev-late"), convey.ShouldEqual, 0)
			})
		})
	})
}
