package smoketest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
)

// Run executes the complete evaluation smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting evaluation smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("urls", len(config.URLs)),
		logger.Int("repeat", config.Repeat),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Expand the URL list
	urls := expandURLs(config)
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to submit")
	}

	// Step 3: Submit evaluations concurrently
	ids, err := submitEvaluations(ctx, config, urls, stats)
	if err != nil {
		return fmt.Errorf("evaluation submission failed: %w", err)
	}

	// Step 4: Poll every evaluation until it settles
	reports, err := pollReports(ctx, config, ids, stats)
	if err != nil {
		return fmt.Errorf("report polling failed: %w", err)
	}

	// Step 5: Verify the settled reports
	if err := verifyReports(ctx, config, reports, stats); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}

	// Step 6: Print final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	printStats(stats)

	return nil
}

// expandURLs repeats each configured URL per the repeat count.
func expandURLs(config *Config) []string {
	repeat := config.Repeat
	if repeat < 1 {
		repeat = 1
	}
	urls := make([]string, 0, len(config.URLs)*repeat)
	for i := 0; i < repeat; i++ {
		urls = append(urls, config.URLs...)
	}
	return urls
}

// printStats prints the final test statistics.
func printStats(stats *Stats) {
	log.Println("📊 Smoke test statistics:")
	log.Printf("   Submitted:       %d", stats.Submitted)
	log.Printf("   Accepted:        %d", stats.Accepted)
	log.Printf("   Rejected:        %d", stats.Rejected)
	log.Printf("   Completed:       %d", stats.Completed)
	log.Printf("   Timed out:       %d", stats.TimedOut)
	log.Printf("   Verify failures: %d", stats.VerifyFailures)
	log.Printf("   Duration:        %s", stats.Duration.Round(time.Millisecond))

	if stats.Accepted > 0 && stats.Completed == stats.Accepted && stats.VerifyFailures == 0 {
		log.Println("✅ Smoke test passed")
	} else {
		log.Println("⚠️  Smoke test finished with issues")
	}
}
