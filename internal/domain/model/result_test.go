package model_test

import (
	"testing"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRatingForScore(t *testing.T) {
	Convey("Given the rating band thresholds", t, func() {
		Convey("Then scores map to the expected bands", func() {
			So(model.RatingForScore(100), ShouldEqual, model.RatingExcellent)
			So(model.RatingForScore(90), ShouldEqual, model.RatingExcellent)
			So(model.RatingForScore(89), ShouldEqual, model.RatingGood)
			So(model.RatingForScore(80), ShouldEqual, model.RatingGood)
			So(model.RatingForScore(79), ShouldEqual, model.RatingFair)
			So(model.RatingForScore(60), ShouldEqual, model.RatingFair)
			So(model.RatingForScore(59), ShouldEqual, model.RatingPoor)
			So(model.RatingForScore(40), ShouldEqual, model.RatingPoor)
			So(model.RatingForScore(39), ShouldEqual, model.RatingVeryPoor)
			So(model.RatingForScore(0), ShouldEqual, model.RatingVeryPoor)
		})
	})
}

func TestClampScore(t *testing.T) {
	Convey("Given out-of-range scores", t, func() {
		Convey("Then they are clamped to [0,100]", func() {
			So(model.ClampScore(-12), ShouldEqual, 0)
			So(model.ClampScore(0), ShouldEqual, 0)
			So(model.ClampScore(55), ShouldEqual, 55)
			So(model.ClampScore(100), ShouldEqual, 100)
			So(model.ClampScore(140), ShouldEqual, 100)
		})
	})
}

func TestResultKeys(t *testing.T) {
	Convey("Given the five dimensions", t, func() {
		Convey("Then each maps to its persisted document key", func() {
			So(model.DimensionSEO.ResultKey(), ShouldEqual, "seo_analysis")
			So(model.DimensionMobile.ResultKey(), ShouldEqual, "mobile_analysis")
			So(model.DimensionPerformance.ResultKey(), ShouldEqual, "performance_analysis")
			So(model.DimensionAccessibility.ResultKey(), ShouldEqual, "accessibility_analysis")
			So(model.DimensionSynthesis.ResultKey(), ShouldEqual, "llm_analysis")
		})

		Convey("Then AllDimensions lists all five in report order", func() {
			So(model.AllDimensions(), ShouldResemble, []model.Dimension{
				model.DimensionSEO,
				model.DimensionMobile,
				model.DimensionPerformance,
				model.DimensionAccessibility,
				model.DimensionSynthesis,
			})
		})
	})
}
