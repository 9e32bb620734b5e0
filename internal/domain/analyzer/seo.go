package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/htmldoc"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// SEO deduction constants.
const (
	seoMissingTitlePenalty       = 15
	seoTitleLengthPenalty        = 5
	seoMissingDescriptionPenalty = 10
	seoDescriptionLengthPenalty  = 3
	seoMissingH1Penalty          = 10
	seoMultipleH1Penalty         = 5
	seoMissingAltMaxPenalty      = 10
	seoMissingCanonicalPenalty   = 3
	seoMissingViewportPenalty    = 8
	seoThinContentPenalty        = 7

	seoTitleMinLength       = 30
	seoTitleMaxLength       = 60
	seoDescriptionMinLength = 100
	seoDescriptionMaxLength = 160
	seoMinWordCount         = 300
)

var (
	robotsNamePattern = regexp.MustCompile(`(?i)robots`)
	wordPattern       = regexp.MustCompile(`\w+`)
)

// SEO analyzes search-engine-facing markup quality.
type SEO struct{}

// NewSEO creates the SEO analyzer.
func NewSEO() *SEO { return &SEO{} }

func (s *SEO) Dimension() model.Dimension { return model.DimensionSEO }

// Analyze extracts the SEO signals from the page and applies the fixed
// deduction table. Internal failures degrade to an Error-rated result.
func (s *SEO) Analyze(_ context.Context, page Page) model.AnalysisResult {
	start := time.Now()

	base, err := url.Parse(page.URL)
	if err != nil || base.Host == "" {
		if err == nil {
			err = fmt.Errorf("url has no host: %q", page.URL)
		}
		return ErrorResult(s.Dimension(), start, err)
	}

	doc := htmldoc.Parse(page.HTML)

	// Title: <title> first, then Open Graph fallback.
	title := ""
	if t := doc.Find("title"); t != nil {
		title = t.Text()
	}
	if title == "" {
		if og := doc.Find("meta", htmldoc.WithAttrEqual("property", "og:title")); og != nil {
			title = strings.TrimSpace(og.AttrValue("content"))
		}
	}

	// Meta description: standard tag first, then Open Graph fallback.
	description := ""
	if d := doc.Find("meta", htmldoc.WithAttrEqual("name", "description")); d != nil {
		description = strings.TrimSpace(d.AttrValue("content"))
	}
	if description == "" {
		if og := doc.Find("meta", htmldoc.WithAttrEqual("property", "og:description")); og != nil {
			description = strings.TrimSpace(og.AttrValue("content"))
		}
	}

	h1s := doc.FindAll("h1")
	h2s := doc.FindAll("h2")
	h3s := doc.FindAll("h3")
	h1Text := make([]string, 0, len(h1s))
	for _, h := range h1s {
		h1Text = append(h1Text, h.Text())
	}

	// Canonical link, resolved to absolute form against the page origin.
	canonical := ""
	if c := doc.Find("link", htmldoc.WithAttrContains("rel", "canonical")); c != nil {
		canonical = strings.TrimSpace(c.AttrValue("href"))
		if canonical != "" && !strings.HasPrefix(canonical, "http://") && !strings.HasPrefix(canonical, "https://") {
			if ref, refErr := url.Parse(canonical); refErr == nil {
				canonical = base.ResolveReference(ref).String()
			}
		}
	}

	robots := ""
	if r := doc.Find("meta", htmldoc.WithAttrMatch("name", robotsNamePattern)); r != nil {
		robots = strings.TrimSpace(r.AttrValue("content"))
	}

	structuredData := len(doc.FindAll("script", htmldoc.WithAttrEqual("type", "application/ld+json")))

	images := doc.FindAll("img")
	withAlt := 0
	for _, img := range images {
		if strings.TrimSpace(img.AttrValue("alt")) != "" {
			withAlt++
		}
	}
	withoutAlt := len(images) - withAlt

	internal, external := classifyLinks(doc, base)

	hasViewport := false
	if v := doc.Find("meta", htmldoc.WithAttrEqual("name", "viewport")); v != nil && v.AttrValue("content") != "" {
		hasViewport = true
	}

	wordCount := len(wordPattern.FindAllString(doc.Text(), -1))

	var issues []model.Issue
	score := 100

	// Length bands count characters, not bytes.
	titleLength := utf8.RuneCountInString(title)
	descriptionLength := utf8.RuneCountInString(description)

	switch {
	case title == "":
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "Page is missing a title tag."})
		score -= seoMissingTitlePenalty
	case titleLength < seoTitleMinLength:
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "Title is too short (less than 30 characters)."})
		score -= seoTitleLengthPenalty
	case titleLength > seoTitleMaxLength:
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "Title is too long (more than 60 characters)."})
		score -= seoTitleLengthPenalty
	}

	switch {
	case description == "":
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "Missing meta description."})
		score -= seoMissingDescriptionPenalty
	case descriptionLength < seoDescriptionMinLength:
		issues = append(issues, model.Issue{Severity: model.SeverityLow, Message: "Meta description is too short (less than 100 characters)."})
		score -= seoDescriptionLengthPenalty
	case descriptionLength > seoDescriptionMaxLength:
		issues = append(issues, model.Issue{Severity: model.SeverityLow, Message: "Meta description is too long (more than 160 characters)."})
		score -= seoDescriptionLengthPenalty
	}

	switch {
	case len(h1s) == 0:
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "Missing H1 heading."})
		score -= seoMissingH1Penalty
	case len(h1s) > 1:
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: fmt.Sprintf("Multiple H1 tags found: %d.", len(h1s))})
		score -= seoMultipleH1Penalty
	}

	if len(images) > 0 && withoutAlt > 0 {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: fmt.Sprintf("%d of %d images lack alt text.", withoutAlt, len(images))})
		score -= minInt(seoMissingAltMaxPenalty, withoutAlt)
	}

	if canonical == "" {
		issues = append(issues, model.Issue{Severity: model.SeverityLow, Message: "Missing canonical URL."})
		score -= seoMissingCanonicalPenalty
	}

	if !hasViewport {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: "Missing viewport meta tag for mobile-friendliness."})
		score -= seoMissingViewportPenalty
	}

	if wordCount < seoMinWordCount {
		issues = append(issues, model.Issue{Severity: model.SeverityMedium, Message: fmt.Sprintf("Thin content detected (%d words).", wordCount)})
		score -= seoThinContentPenalty
	}

	m := model.SEOMetrics{
		Title:           model.TextMeasure{Text: title, Length: titleLength},
		MetaDescription: model.TextMeasure{Text: description, Length: descriptionLength},
		Headings: model.HeadingCounts{
			H1Count: len(h1s),
			H1Text:  h1Text,
			H2Count: len(h2s),
			H3Count: len(h3s),
		},
		Images:              model.ImageCounts{Total: len(images), WithAlt: withAlt, WithoutAlt: withoutAlt},
		Links:               model.LinkCounts{Internal: internal, External: external},
		CanonicalURL:        canonical,
		Robots:              robots,
		StructuredDataCount: structuredData,
		HasViewport:         hasViewport,
		WordCount:           wordCount,
	}

	return finish(score, issues, m, start)
}

// classifyLinks splits anchors into internal and external by comparing
// each resolved link's host to the page's host. Fragment, javascript:
// and mailto: links are ignored.
func classifyLinks(doc *htmldoc.Document, base *url.URL) (internal, external int) {
	for _, a := range doc.FindAll("a", htmldoc.WithAttr("href")) {
		href := strings.TrimSpace(a.AttrValue("href"))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Host == base.Host {
			internal++
		} else {
			external++
		}
	}
	return internal, external
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
