package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/mq/queue"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/analyzer"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/synthesis"
	"github.com/dakshpokar/UnifiedWebInsights/internal/pipeline"
	logging "github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeAcquirer struct {
	snapshot model.Snapshot
	err      error
}

func (f *fakeAcquirer) Acquire(_ context.Context, _ string) (model.Snapshot, error) {
	if f.err != nil {
		return model.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func goodReasoner() synthesis.Reasoner {
	return synthesis.ReasonerFunc(func(context.Context, string) (string, error) {
		return `{"summary":"Looks fine overall.","recommendations":["Add a title"],"snippets":{}}`, nil
	})
}

func createRecord(t *testing.T, store repository.Store, id, url string) {
	t.Helper()
	err := store.Create(context.Background(), &model.Evaluation{
		ID:        id,
		URL:       url,
		CreatedAt: time.Now().UTC(),
		Status:    model.StatusProcessing,
	})
	if err != nil {
		t.Fatalf("creating record: %v", err)
	}
}

func TestPipelineRun(t *testing.T) {
	_ = logging.Init()
	ctx := context.Background()

	const pageHTML = `<html lang="en"><head>` +
		`<title>A reasonably descriptive page title</title>` +
		`<meta name="viewport" content="width=device-width">` +
		`</head><body><header>h</header><nav>n</nav><main><h1>Welcome</h1></main>` +
		`<aside>a</aside><footer>f</footer></body></html>`

	Convey("Given a healthy set of collaborators", t, func() {
		store := repository.NewMemStore()
		createRecord(t, store, "ev-1", "https://example.com/")

		p := pipeline.New(store, &fakeAcquirer{snapshot: model.Snapshot{HTML: pageHTML, StatusCode: 200}}, goodReasoner())

		Convey("When the pipeline runs", func() {
			err := p.Run(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://example.com/"})

			Convey("Then the record walks the full lifecycle to complete", func() {
				So(err, ShouldBeNil)

				ev, gerr := store.Get(ctx, "ev-1")
				So(gerr, ShouldBeNil)
				So(ev.Status, ShouldEqual, model.StatusComplete)
				So(ev.Snapshot, ShouldNotBeNil)
				So(ev.Snapshot.HTML, ShouldEqual, pageHTML)
				So(ev.ErrorDetail, ShouldBeEmpty)
			})

			Convey("And all five results are present", func() {
				ev, _ := store.Get(ctx, "ev-1")
				So(ev.PendingDimensions(), ShouldBeEmpty)
				So(ev.SEO.Rating, ShouldNotEqual, model.RatingError)
				So(ev.Mobile.Rating, ShouldNotEqual, model.RatingError)
				So(ev.Performance.Rating, ShouldNotEqual, model.RatingError)
				So(ev.Accessibility.Rating, ShouldNotEqual, model.RatingError)
				So(ev.Synthesis.Summary, ShouldEqual, "Looks fine overall.")
			})
		})
	})

	Convey("Given acquisition fails", t, func() {
		store := repository.NewMemStore()
		createRecord(t, store, "ev-1", "https://down.example/")

		p := pipeline.New(store, &fakeAcquirer{err: errors.New("connection refused")}, goodReasoner())

		Convey("When the pipeline runs", func() {
			err := p.Run(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://down.example/"})

			Convey("Then the record is errored with the cause", func() {
				So(err, ShouldNotBeNil)

				ev, _ := store.Get(ctx, "ev-1")
				So(ev.Status, ShouldEqual, model.StatusErrored)
				So(ev.ErrorDetail, ShouldContainSubstring, "connection refused")
				So(ev.SEO, ShouldBeNil)
			})
		})
	})

	Convey("Given one analyzer panics", t, func() {
		store := repository.NewMemStore()
		createRecord(t, store, "ev-1", "https://example.com/")

		p := pipeline.New(store,
			&fakeAcquirer{snapshot: model.Snapshot{HTML: pageHTML}},
			goodReasoner(),
			pipeline.WithAnalyzers(
				panickingAnalyzer{},
				analyzer.NewMobile(),
				analyzer.NewPerformance(),
				analyzer.NewAccessibility(),
			),
		)

		Convey("When the pipeline runs", func() {
			err := p.Run(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://example.com/"})

			Convey("Then the failure is contained and the evaluation completes", func() {
				So(err, ShouldBeNil)

				ev, _ := store.Get(ctx, "ev-1")
				So(ev.Status, ShouldEqual, model.StatusComplete)
				So(ev.SEO.Rating, ShouldEqual, model.RatingError)
				So(ev.SEO.Score, ShouldEqual, 0)
				So(ev.Mobile.Rating, ShouldNotEqual, model.RatingError)
			})
		})
	})

	Convey("Given the reasoning service returns garbage", t, func() {
		store := repository.NewMemStore()
		createRecord(t, store, "ev-1", "https://example.com/")

		p := pipeline.New(store,
			&fakeAcquirer{snapshot: model.Snapshot{HTML: pageHTML}},
			synthesis.ReasonerFunc(func(context.Context, string) (string, error) {
				return "not json at all", nil
			}),
		)

		Convey("When the pipeline runs", func() {
			err := p.Run(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://example.com/"})

			Convey("Then synthesis degrades and the evaluation still completes", func() {
				So(err, ShouldBeNil)

				ev, _ := store.Get(ctx, "ev-1")
				So(ev.Status, ShouldEqual, model.StatusComplete)
				So(ev.Synthesis.Summary, ShouldContainSubstring, "could not be parsed")
				So(ev.Synthesis.Raw, ShouldEqual, "not json at all")
			})
		})
	})

	Convey("Given a slow analyzer and a short timeout", t, func() {
		store := repository.NewMemStore()
		createRecord(t, store, "ev-1", "https://example.com/")

		p := pipeline.New(store,
			&fakeAcquirer{snapshot: model.Snapshot{HTML: pageHTML}},
			goodReasoner(),
			pipeline.WithAnalyzers(
				slowAnalyzer{},
				analyzer.NewMobile(),
				analyzer.NewPerformance(),
				analyzer.NewAccessibility(),
			),
			pipeline.WithAnalyzerTimeout(20*time.Millisecond),
		)

		Convey("When the pipeline runs", func() {
			start := time.Now()
			err := p.Run(ctx, queue.Job{EvaluationID: "ev-1", URL: "https://example.com/"})

			Convey("Then the slow analyzer times out without stalling the rest", func() {
				So(err, ShouldBeNil)
				So(time.Since(start), ShouldBeLessThan, 2*time.Second)

				ev, _ := store.Get(ctx, "ev-1")
				So(ev.Status, ShouldEqual, model.StatusComplete)
				So(ev.SEO.Rating, ShouldEqual, model.RatingError)
				So(ev.SEO.Issues[0].Message, ShouldContainSubstring, "timeout")
			})
		})
	})
}

type panickingAnalyzer struct{}

func (panickingAnalyzer) Dimension() model.Dimension { return model.DimensionSEO }
func (panickingAnalyzer) Analyze(context.Context, analyzer.Page) model.AnalysisResult {
	panic("nil dereference")
}

type slowAnalyzer struct{}

func (slowAnalyzer) Dimension() model.Dimension { return model.DimensionSEO }
func (slowAnalyzer) Analyze(ctx context.Context, _ analyzer.Page) model.AnalysisResult {
	select {
	case <-time.After(10 * time.Second):
	case <-ctx.Done():
	}
	return model.AnalysisResult{}
}
