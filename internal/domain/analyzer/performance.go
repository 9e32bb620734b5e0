package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/htmldoc"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// Performance deduction constants.
const (
	perfLargeHTMLPenalty          = 5
	perfManyResourcesPenalty      = 5
	perfTooManyResourcesPenalty   = 10
	perfRenderBlockingPenalty     = 2
	perfNoLazyLoadingPenalty      = 5
	perfUnminifiedPenalty         = 5
	perfMaxHTMLSizeKB             = 100
	perfResourceWarnThreshold     = 30
	perfResourceCriticalThreshold = 50
	perfLazyLoadingImageMinimum   = 3
)

// Performance analyzes static delivery-cost signals of the markup.
type Performance struct{}

// NewPerformance creates the performance analyzer.
func NewPerformance() *Performance { return &Performance{} }

func (p *Performance) Dimension() model.Dimension { return model.DimensionPerformance }

func (p *Performance) Analyze(_ context.Context, page Page) model.AnalysisResult {
	start := time.Now()
	doc := htmldoc.Parse(page.HTML)

	htmlSizeKB := float64(len(page.HTML)) / 1024

	stylesheets := doc.FindAll("link", htmldoc.WithAttrContains("rel", "stylesheet"))
	scripts := doc.FindAll("script", htmldoc.WithAttr("src"))
	images := doc.FindAll("img", htmldoc.WithAttr("src"))
	iframes := doc.FindAll("iframe")
	totalResources := len(stylesheets) + len(scripts) + len(images) + len(iframes)

	renderBlocking := countRenderBlocking(doc)

	lazyLoaded := 0
	for _, img := range images {
		if img.AttrValue("loading") == "lazy" || hasAttr(img, "data-src") || hasAttr(img, "data-srcset") {
			lazyLoaded++
		}
	}

	minifiedJS := allMinified(scripts, "src")
	minifiedCSS := allMinified(stylesheets, "href")

	var issues []model.Issue
	score := 100

	if htmlSizeKB > perfMaxHTMLSizeKB {
		issues = append(issues, model.Issue{
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("HTML document is large (%.1fKB).", htmlSizeKB),
		})
		score -= perfLargeHTMLPenalty
	}

	switch {
	case totalResources > perfResourceCriticalThreshold:
		issues = append(issues, model.Issue{
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("High number of resources detected (%d).", totalResources),
		})
		score -= perfTooManyResourcesPenalty
	case totalResources > perfResourceWarnThreshold:
		issues = append(issues, model.Issue{
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("Too many resources detected (%d).", totalResources),
		})
		score -= perfManyResourcesPenalty
	}

	if renderBlocking > 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("%d render-blocking resources detected.", renderBlocking),
		})
		score -= renderBlocking * perfRenderBlockingPenalty
	}

	if len(images) > perfLazyLoadingImageMinimum && lazyLoaded == 0 {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "No images use lazy loading."})
		score -= perfNoLazyLoadingPenalty
	}

	if !minifiedJS {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "JavaScript files are not minified."})
		score -= perfUnminifiedPenalty
	}

	if !minifiedCSS {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "CSS files are not minified."})
		score -= perfUnminifiedPenalty
	}

	m := model.PerformanceMetrics{
		HTMLSizeKB: math.Round(htmlSizeKB*100) / 100,
		ResourceCounts: model.ResourceCounts{
			Stylesheets: len(stylesheets),
			Scripts:     len(scripts),
			Images:      len(images),
			Iframes:     len(iframes),
		},
		TotalResources:      totalResources,
		RenderBlockingCount: renderBlocking,
		LazyLoadedImages:    lazyLoaded,
		MinifiedJS:          minifiedJS,
		MinifiedCSS:         minifiedCSS,
	}

	return finish(score, issues, m, start)
}

// countRenderBlocking counts head-section stylesheets without a media
// scope (or scoped to all) and head-section scripts lacking both async
// and defer.
func countRenderBlocking(doc *htmldoc.Document) int {
	head := doc.Find("head")
	if head == nil {
		return 0
	}
	count := 0
	for _, css := range head.FindAll("link", htmldoc.WithAttrContains("rel", "stylesheet")) {
		media := css.AttrValue("media")
		if media == "" || media == "all" {
			count++
		}
	}
	for _, script := range head.FindAll("script", htmldoc.WithAttr("src")) {
		if !hasAttr(script, "async") && !hasAttr(script, "defer") {
			count++
		}
	}
	return count
}

// allMinified reports whether every resource URL in the list carries a
// minification filename marker. An empty list counts as minified.
func allMinified(elements []*htmldoc.Element, attr string) bool {
	for _, el := range elements {
		if !strings.Contains(el.AttrValue(attr), ".min.") {
			return false
		}
	}
	return true
}

func hasAttr(el *htmldoc.Element, name string) bool {
	_, ok := el.Attr(name)
	return ok
}
