package model_test

import (
	"testing"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluationStatusInvariant(t *testing.T) {
	Convey("Given a freshly created evaluation", t, func() {
		eval := &model.Evaluation{
			ID:        "eval-1",
			URL:       "https://example.com",
			CreatedAt: time.Now().UTC(),
			Status:    model.StatusProcessing,
		}

		Convey("Then it derives processing with all five dimensions pending", func() {
			So(eval.DeriveStatus(), ShouldEqual, model.StatusProcessing)
			So(eval.PendingDimensions(), ShouldHaveLength, 5)
			So(eval.CompletedDimensions(), ShouldBeEmpty)
		})

		Convey("When four analyzer results are present but synthesis is not", func() {
			result := &model.AnalysisResult{Score: 85, Rating: model.RatingGood}
			eval.SEO = result
			eval.Mobile = result
			eval.Performance = result
			eval.Accessibility = result

			Convey("Then it still derives processing with synthesis pending", func() {
				So(eval.DeriveStatus(), ShouldEqual, model.StatusProcessing)
				So(eval.PendingDimensions(), ShouldResemble, []model.Dimension{model.DimensionSynthesis})
			})

			Convey("And when synthesis completes it derives complete", func() {
				eval.Synthesis = &model.SynthesisReport{Summary: "ok"}
				So(eval.DeriveStatus(), ShouldEqual, model.StatusComplete)
				So(eval.PendingDimensions(), ShouldBeEmpty)
				So(eval.CompletedDimensions(), ShouldHaveLength, 5)
			})
		})

		Convey("When an error detail is set", func() {
			eval.ErrorDetail = "acquisition failed: connection refused"

			Convey("Then it derives errored regardless of result presence", func() {
				So(eval.DeriveStatus(), ShouldEqual, model.StatusErrored)

				eval.SEO = &model.AnalysisResult{Score: 10, Rating: model.RatingVeryPoor}
				So(eval.DeriveStatus(), ShouldEqual, model.StatusErrored)
			})
		})
	})
}

func TestEvaluationResultAccess(t *testing.T) {
	Convey("Given an evaluation with a mix of present and absent results", t, func() {
		eval := &model.Evaluation{
			ID:  "eval-2",
			URL: "https://example.com",
			SEO: &model.AnalysisResult{Score: 70, Rating: model.RatingFair},
			Synthesis: &model.SynthesisReport{
				Summary:         "Mostly fine",
				Recommendations: []string{"Add a meta description"},
			},
		}

		Convey("Then HasResult reflects presence per dimension", func() {
			So(eval.HasResult(model.DimensionSEO), ShouldBeTrue)
			So(eval.HasResult(model.DimensionSynthesis), ShouldBeTrue)
			So(eval.HasResult(model.DimensionMobile), ShouldBeFalse)
			So(eval.HasResult(model.DimensionPerformance), ShouldBeFalse)
			So(eval.HasResult(model.DimensionAccessibility), ShouldBeFalse)
		})

		Convey("Then Result returns the stored value or nil", func() {
			So(eval.Result(model.DimensionSEO), ShouldEqual, eval.SEO)
			So(eval.Result(model.DimensionSynthesis), ShouldEqual, eval.Synthesis)
			So(eval.Result(model.DimensionMobile), ShouldBeNil)
		})
	})
}
