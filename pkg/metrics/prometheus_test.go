package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("And its metrics should be gatherable", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording evaluation events", func() {
			So(func() {
				RecordEvaluationStarted()
				RecordEvaluationCompleted()
				RecordEvaluationErrored()
				RecordPipelineDuration(1.25)
			}, ShouldNotPanic)
		})

		Convey("When recording analyzer events", func() {
			So(func() {
				RecordAnalyzerDuration("seo", 0.05)
				RecordAnalyzerError("mobile")
			}, ShouldNotPanic)
		})

		Convey("When recording acquisition and synthesis events", func() {
			So(func() {
				RecordAcquisitionLatency(0.3)
				RecordAcquisitionError()
				RecordSynthesisLatency(2.0)
				RecordSynthesisParseFailure()
				RecordStoreError()
			}, ShouldNotPanic)
		})

		Convey("When updating queue and worker gauges", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(1024)
				UpdateQueueUtilization(0.01)
				RecordQueueRejection()
				UpdateWorkerCount(4)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/evaluate", "POST", "200")
				RecordHTTPRequestDuration("/api/evaluate", "POST", "200", 0.02)
			}, ShouldNotPanic)
		})

		Convey("Then the global registry exposes the evaluation metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["uwi_evaluation_started_total"], ShouldBeTrue)
			So(names["uwi_evaluation_queue_size"], ShouldBeTrue)
		})
	})
}
