package queue_test

import (
	"context"
	"testing"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with small capacity", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When jobs are enqueued within capacity", func() {
			ok1 := q.Enqueue(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://a.example/"})
			ok2 := q.Enqueue(ctx, queue.Job{EvaluationID: "ev-2", URL: "https://b.example/"})

			Convey("Then both are accepted", func() {
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("And a job beyond capacity is rejected, not blocked", func() {
				So(q.Enqueue(ctx, queue.Job{EvaluationID: "ev-3"}), ShouldBeFalse)
			})
		})

		Convey("When jobs are dequeued", func() {
			q.Enqueue(ctx, queue.Job{EvaluationID: "ev-1"})
			q.Enqueue(ctx, queue.Job{EvaluationID: "ev-2"})
			So(q.Close(), ShouldBeNil)

			Convey("Then they arrive in FIFO order and the channel closes", func() {
				var ids []string
				for job := range q.Dequeue(ctx) {
					ids = append(ids, job.EvaluationID)
				}
				So(ids, ShouldResemble, []string{"ev-1", "ev-2"})
			})
		})
	})

	Convey("Given a closed queue", t, func() {
		q := queue.NewInMemoryQueue()
		So(q.Close(), ShouldBeNil)

		Convey("Then enqueue is refused", func() {
			So(q.Enqueue(ctx, queue.Job{EvaluationID: "ev-1"}), ShouldBeFalse)
			So(q.IsClosed(), ShouldBeTrue)
		})

		Convey("And closing again is harmless", func() {
			So(q.Close(), ShouldBeNil)
		})
	})
}
