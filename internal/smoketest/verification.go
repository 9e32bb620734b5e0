package smoketest

import (
	"context"
	"fmt"
	"log"
)

var validRatings = map[string]bool{
	"Excellent": true,
	"Good":      true,
	"Fair":      true,
	"Poor":      true,
	"Very Poor": true,
	"Error":     true,
}

// verifyReports checks every settled report for shape and range
// violations. Failures are counted, not fatal, so a long run reports
// all of them at once.
func verifyReports(ctx context.Context, config *Config, reports []ReportResponse, stats *Stats) error {
	log.Println("🔍 Verifying reports...")

	if len(reports) == 0 {
		return fmt.Errorf("no reports to verify")
	}

	for _, report := range reports {
		problems := verifyReport(report)
		if len(problems) > 0 {
			stats.VerifyFailures++
			for _, p := range problems {
				log.Printf("⚠️  %s: %s", report.EvaluationID, p)
			}
		} else if config.Verbose {
			log.Printf("✅ %s verified (seo=%d mobile=%d perf=%d a11y=%d)",
				report.EvaluationID,
				report.SEO.Score, report.Mobile.Score,
				report.Performance.Score, report.Accessibility.Score)
		}
	}

	log.Printf("🔍 Verification complete: %d reports checked, %d with problems",
		len(reports), stats.VerifyFailures)
	return nil
}

// verifyReport returns every shape violation found in one report.
func verifyReport(report ReportResponse) []string {
	var problems []string

	if report.Status != "success" {
		problems = append(problems, fmt.Sprintf("unexpected status %q", report.Status))
	}
	if !report.AnalysisComplete {
		problems = append(problems, "analysisComplete is false on a settled report")
	}

	dimensions := map[string]*AnalysisResult{
		"seoAnalysis":           report.SEO,
		"mobileAnalysis":        report.Mobile,
		"performanceAnalysis":   report.Performance,
		"accessibilityAnalysis": report.Accessibility,
	}
	for name, result := range dimensions {
		if result == nil {
			problems = append(problems, fmt.Sprintf("%s missing", name))
			continue
		}
		if result.Score < 0 || result.Score > 100 {
			problems = append(problems, fmt.Sprintf("%s score %d out of range", name, result.Score))
		}
		if !validRatings[result.Rating] {
			problems = append(problems, fmt.Sprintf("%s rating %q unknown", name, result.Rating))
		}
	}

	if report.LLM == nil {
		problems = append(problems, "llmAnalysis missing")
	} else if report.LLM.Summary == "" {
		problems = append(problems, "llmAnalysis summary empty")
	}

	return problems
}
