package analyzer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/analyzer"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAccessibilityAnalyzer(t *testing.T) {
	a11y := analyzer.NewAccessibility()
	ctx := context.Background()

	Convey("Given a page with a known mix of accessibility problems", t, func() {
		// lang is set, nav and aside landmarks are missing, one of two
		// images lacks alt text, one form input has no label, and the
		// body carries 500 characters of text.
		page := analyzer.Page{
			URL: "https://example.com/",
			HTML: `<html lang="en"><body>` +
				`<header>h</header><main>` +
				`<img src="a.png" alt="described"><img src="b.png">` +
				`<form><input type="text" name="q"></form>` +
				`<p>` + strings.Repeat("Lorem ipsum dolor sit amet. ", 18) + `</p>` +
				`</main><footer>f</footer>` +
				`</body></html>`,
		}

		Convey("Then each check deducts independently", func() {
			result := a11y.Analyze(ctx, page)

			// 100 - 10 (alt coverage over 20%) - 10 (unlabeled form
			// control) - 2*5 (missing nav, aside)
			So(result.Score, ShouldEqual, 70)
			So(result.Rating, ShouldEqual, model.RatingFair)

			m, ok := result.Metrics.(model.AccessibilityMetrics)
			So(ok, ShouldBeTrue)
			So(m.Lang, ShouldEqual, "en")
			So(m.TotalImages, ShouldEqual, 2)
			So(m.MissingImageAlts, ShouldEqual, 1)
			So(m.FormIssueCount, ShouldEqual, 1)
			So(m.MissingLandmarks, ShouldResemble, []string{"nav", "aside"})
		})
	})

	Convey("Given a page missing the lang attribute", t, func() {
		page := analyzer.Page{
			URL:  "https://example.com/",
			HTML: `<html><body><p>text</p></body></html>`,
		}

		Convey("Then the lang deduction fires", func() {
			result := a11y.Analyze(ctx, page)
			So(issueMessages(result), ShouldContain, "The <html> tag is missing a 'lang' attribute.")
		})
	})

	Convey("Given form controls labeled both ways", t, func() {
		page := analyzer.Page{
			URL: "https://example.com/",
			HTML: `<html lang="en"><body><form>` +
				`<label for="email">Email</label><input id="email" type="email">` +
				`<label>Name <input type="text" name="name"></label>` +
				`<select id="country"></select>` +
				`</form></body></html>`,
		}

		Convey("Then only the control with neither association counts", func() {
			result := a11y.Analyze(ctx, page)
			m := result.Metrics.(model.AccessibilityMetrics)
			So(m.FormIssueCount, ShouldEqual, 1)
		})
	})

	Convey("Given a page with no images", t, func() {
		page := analyzer.Page{
			URL:  "https://example.com/",
			HTML: `<html lang="en"><body><p>no images here</p></body></html>`,
		}

		Convey("Then the alt-coverage check does not fire", func() {
			result := a11y.Analyze(ctx, page)
			for _, msg := range issueMessages(result) {
				So(msg, ShouldNotContainSubstring, "missing alt text")
			}
		})
	})

	Convey("Given a page declaring ARIA roles", t, func() {
		page := analyzer.Page{
			URL: "https://example.com/",
			HTML: `<html lang="en"><body>` +
				`<div role="banner">b</div><div role="search">s</div>` +
				`</body></html>`,
		}

		Convey("Then the roles are counted and the informational issue is absent", func() {
			result := a11y.Analyze(ctx, page)
			m := result.Metrics.(model.AccessibilityMetrics)
			So(m.AriaRoleCount, ShouldEqual, 2)
			for _, msg := range issueMessages(result) {
				So(msg, ShouldNotContainSubstring, "No ARIA roles found")
			}
		})
	})

	Convey("Given a page with all landmarks and rich content", t, func() {
		page := analyzer.Page{
			URL: "https://example.com/",
			HTML: `<html lang="en"><body role="document">` +
				`<header>h</header><nav>n</nav><aside>a</aside>` +
				`<main><p>` + strings.Repeat("Plenty of readable body copy here. ", 10) + `</p></main>` +
				`<footer>f</footer></body></html>`,
		}

		Convey("Then the page scores perfectly", func() {
			result := a11y.Analyze(ctx, page)
			So(result.Score, ShouldEqual, 100)
			So(result.Rating, ShouldEqual, model.RatingExcellent)
		})
	})
}
