package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/htmldoc"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// Mobile deduction constants.
const (
	mobileMissingViewportPenalty = 20
	mobileNoUserScalePenalty     = 10
	mobileNotResponsivePenalty   = 15
	mobilePerIssuePenalty        = 5
	mobileFlashPenalty           = 20
	mobileMinTouchTargetPx       = 44
	mobileMinFontSizePx          = 14
	mobileMinLegacyFontSizeLevel = 3
)

// responsiveClassPattern covers common responsive-framework class names
// and utility-class prefixes.
var responsiveClassPattern = regexp.MustCompile(`container|row|col|hidden-xs|visible-md|flex|grid|sm:|md:|lg:`)

var inlineFontSizePattern = regexp.MustCompile(`font-size\s*:\s*(\d+)px`)

// frameworkSignatures maps known responsive frameworks to markup
// signatures (stylesheet filenames or characteristic class usage).
var frameworkSignatures = []struct {
	name       string
	signatures []string
}{
	{"Bootstrap", []string{"bootstrap.css", "bootstrap.min.css", `class="container"`, `class="row"`, `class="col`}},
	{"Foundation", []string{"foundation.css", "foundation.min.css", `class="small-`}},
	{"Tailwind", []string{"tailwind.css", `class="sm:`, `class="md:`, `class="lg:`}},
	{"Bulma", []string{"bulma.css", "bulma.min.css", `class="column"`, `class="columns"`}},
	{"Materialize", []string{"materialize.css", "materialize.min.css", `class="container"`, `class="row"`}},
}

// Mobile analyzes mobile-friendliness. The screenshot artifact is
// accepted but not pixel-inspected; it is reserved for future visual
// checks.
type Mobile struct{}

// NewMobile creates the mobile-friendliness analyzer.
func NewMobile() *Mobile { return &Mobile{} }

func (m *Mobile) Dimension() model.Dimension { return model.DimensionMobile }

func (m *Mobile) Analyze(_ context.Context, page Page) model.AnalysisResult {
	start := time.Now()
	doc := htmldoc.Parse(page.HTML)

	viewportPresent := false
	viewportContent := ""
	if v := doc.Find("meta", htmldoc.WithAttrEqual("name", "viewport")); v != nil {
		if content, ok := v.Attr("content"); ok {
			viewportPresent = true
			viewportContent = content
		}
	}

	responsive := m.checkResponsiveDesign(doc, viewportContent)
	smallTouchTargets := m.countSmallTouchTargets(doc)
	smallFonts := m.countSmallFonts(doc)
	frameworks := detectFrameworks(page.HTML)
	usesFlash := len(doc.FindAll("object", htmldoc.WithAttrEqual("type", "application/x-shockwave-flash"))) > 0

	var issues []model.Issue
	score := 100

	switch {
	case !viewportPresent:
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "Page is missing a viewport meta tag"})
		score -= mobileMissingViewportPenalty
	case strings.Contains(viewportContent, "user-scalable=no"):
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "Page prevents users from zooming, which hinders accessibility"})
		score -= mobileNoUserScalePenalty
	}

	if !responsive {
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "Page does not appear to use responsive design techniques"})
		score -= mobileNotResponsivePenalty
	}

	if smallTouchTargets > 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("Found %d touch elements that may be too small for mobile users", smallTouchTargets),
		})
		score -= mobilePerIssuePenalty
	}

	if smallFonts > 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("Found %d instances of font sizes that may be too small for mobile devices", smallFonts),
		})
		score -= mobilePerIssuePenalty
	}

	if usesFlash {
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "Page uses Flash, which is not supported on most mobile devices"})
		score -= mobileFlashPenalty
	}

	metricsOut := model.MobileMetrics{
		Viewport:                model.ViewportInfo{Present: viewportPresent, Content: viewportContent},
		ResponsiveDesign:        responsive,
		UsesResponsiveFramework: len(frameworks) > 0,
		DetectedFrameworks:      frameworks,
		UsesFlash:               usesFlash,
		SmallTouchTargets:       smallTouchTargets,
		SmallFonts:              smallFonts,
	}

	return finish(score, issues, metricsOut, start)
}

// checkResponsiveDesign looks for any positive responsive-design signal:
// a media query in a style block, a media-scoped stylesheet link, common
// responsive class names, or a device-width viewport directive.
func (m *Mobile) checkResponsiveDesign(doc *htmldoc.Document, viewportContent string) bool {
	for _, style := range doc.FindAll("style") {
		if strings.Contains(style.Text(), "@media") {
			return true
		}
	}

	for _, link := range doc.FindAll("link", htmldoc.WithAttrContains("rel", "stylesheet")) {
		media := link.AttrValue("media")
		if media != "" && (strings.Contains(media, "screen") || strings.Contains(media, "max-width")) {
			return true
		}
	}

	if len(doc.FindAll("", htmldoc.WithAttrMatch("class", responsiveClassPattern))) > 0 {
		return true
	}

	return strings.Contains(viewportContent, "width=device-width")
}

// countSmallTouchTargets counts anchors and buttons whose explicit
// pixel dimensions fall below the platform-standard minimum.
func (m *Mobile) countSmallTouchTargets(doc *htmldoc.Document) int {
	count := 0
	elements := append(doc.FindAll("a"), doc.FindAll("button")...)
	for _, el := range elements {
		width, wok := parsePixels(el.AttrValue("width"))
		height, hok := parsePixels(el.AttrValue("height"))
		if !wok || !hok {
			continue
		}
		if width < mobileMinTouchTargetPx || height < mobileMinTouchTargetPx {
			count++
		}
	}
	return count
}

// countSmallFonts counts inline styles declaring a font size below the
// mobile readability floor, plus legacy <font> tags below size level 3.
func (m *Mobile) countSmallFonts(doc *htmldoc.Document) int {
	count := 0
	for _, el := range doc.FindAll("", htmldoc.WithAttr("style")) {
		match := inlineFontSizePattern.FindStringSubmatch(el.AttrValue("style"))
		if match == nil {
			continue
		}
		if size, err := strconv.Atoi(match[1]); err == nil && size < mobileMinFontSizePx {
			count++
		}
	}
	for _, font := range doc.FindAll("font", htmldoc.WithAttr("size")) {
		if size, err := strconv.Atoi(strings.TrimSpace(font.AttrValue("size"))); err == nil && size < mobileMinLegacyFontSizeLevel {
			count++
		}
	}
	return count
}

// detectFrameworks reports which known responsive frameworks leave
// signatures in the raw markup.
func detectFrameworks(rawHTML string) []string {
	var detected []string
	for _, fw := range frameworkSignatures {
		for _, sig := range fw.signatures {
			if strings.Contains(rawHTML, sig) {
				detected = append(detected, fw.name)
				break
			}
		}
	}
	return detected
}

// parsePixels parses an explicit width/height attribute, tolerating a
// px suffix.
func parsePixels(v string) (int, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
