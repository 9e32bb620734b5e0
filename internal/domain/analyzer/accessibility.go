package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/htmldoc"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// Accessibility deduction constants.
const (
	a11yMissingLangPenalty     = 15
	a11yImageAltPenalty        = 10
	a11yUnlabeledFormPenalty   = 10
	a11yMissingLandmarkPenalty = 5
	a11yThinTextPenalty        = 5

	a11yAltMissingPercentLimit = 20
	a11yMinBodyTextLength      = 200
)

// landmarkTags are the semantic regions a page is expected to declare.
var landmarkTags = []string{"header", "nav", "main", "footer", "aside"}

// Accessibility analyzes WCAG-oriented markup quality.
type Accessibility struct{}

// NewAccessibility creates the accessibility analyzer.
func NewAccessibility() *Accessibility { return &Accessibility{} }

func (a *Accessibility) Dimension() model.Dimension { return model.DimensionAccessibility }

func (a *Accessibility) Analyze(_ context.Context, page Page) model.AnalysisResult {
	start := time.Now()
	doc := htmldoc.Parse(page.HTML)

	var issues []model.Issue
	score := 100

	// Language attribute on the root element (WCAG 3.1.1).
	lang := ""
	if root := doc.Find("html"); root != nil {
		lang = strings.TrimSpace(root.AttrValue("lang"))
	}
	if lang == "" {
		issues = append(issues, model.Issue{Severity: model.SeverityHigh, Message: "The <html> tag is missing a 'lang' attribute."})
		score -= a11yMissingLangPenalty
	}

	// Image alt coverage (WCAG 1.1.1), evaluated only when images exist.
	images := doc.FindAll("img")
	missingAlt := 0
	for _, img := range images {
		if strings.TrimSpace(img.AttrValue("alt")) == "" {
			missingAlt++
		}
	}
	if len(images) > 0 {
		percentMissing := float64(missingAlt) / float64(len(images)) * 100
		if percentMissing > a11yAltMissingPercentLimit {
			issues = append(issues, model.Issue{
				Severity: model.SeverityMedium,
				Message:  fmt.Sprintf("%d out of %d images are missing alt text.", missingAlt, len(images)),
			})
			score -= a11yImageAltPenalty
		}
	}

	// Form controls need an associated label, either by id reference or
	// by nesting inside a label element (WCAG 1.3.1 & 2.5.3).
	formIssueCount := 0
	for _, form := range doc.FindAll("form") {
		controls := append(form.FindAll("input"), append(form.FindAll("select"), form.FindAll("textarea")...)...)
		for _, control := range controls {
			labeled := false
			if id := control.AttrValue("id"); id != "" {
				if form.Find("label", htmldoc.WithAttrEqual("for", id)) != nil {
					labeled = true
				}
			}
			if !labeled && control.Closest("label") != nil {
				labeled = true
			}
			if !labeled {
				formIssueCount++
			}
		}
	}
	if formIssueCount > 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("%d form elements are missing associated labels.", formIssueCount),
		})
		score -= a11yUnlabeledFormPenalty
	}

	// Landmark and semantic regions (WCAG 2.4.1).
	var missingLandmarks []string
	for _, tag := range landmarkTags {
		if doc.Find(tag) == nil {
			missingLandmarks = append(missingLandmarks, tag)
		}
	}
	if len(missingLandmarks) > 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityLow,
			Message:  fmt.Sprintf("Missing landmark/semantic regions: %s.", strings.Join(missingLandmarks, ", ")),
		})
		score -= a11yMissingLandmarkPenalty * len(missingLandmarks)
	}

	// Thin-content heuristic on the body text, counted in characters.
	bodyTextLength := 0
	if body := doc.Find("body"); body != nil {
		bodyTextLength = utf8.RuneCountInString(body.Text())
		if bodyTextLength < a11yMinBodyTextLength {
			issues = append(issues, model.Issue{
				Severity: model.SeverityLow,
				Message:  "Page has very little text, which may affect content comprehension.",
			})
			score -= a11yThinTextPenalty
		}
	}

	// ARIA roles are informational only: semantic markup may already
	// satisfy the intent, so no deduction.
	ariaRoles := len(doc.FindAll("", htmldoc.WithAttr("role")))
	if ariaRoles == 0 {
		issues = append(issues, model.Issue{
			Severity: model.SeverityLow,
			Message:  "No ARIA roles found. Consider using ARIA where semantic HTML is insufficient.",
		})
	}

	m := model.AccessibilityMetrics{
		Lang:             lang,
		TotalImages:      len(images),
		MissingImageAlts: missingAlt,
		FormIssueCount:   formIssueCount,
		MissingLandmarks: missingLandmarks,
		AriaRoleCount:    ariaRoles,
		BodyTextLength:   bodyTextLength,
	}

	return finish(score, issues, m, start)
}
