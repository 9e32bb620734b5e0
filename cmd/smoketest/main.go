package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/internal/smoketest"
)

// Default configuration constants.
const (
	defaultRepeat      = 1
	defaultTimeout     = 30 * time.Second
	defaultPollWait    = 2 * time.Minute
	defaultTestTimeout = 10 * time.Minute
)

// defaultURLs are submitted when no page URLs are given on the command
// line.
var defaultURLs = []string{
	"https://example.com",
	"https://www.wikipedia.org",
	"https://news.ycombinator.com",
}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		repeat   = flag.Int("repeat", defaultRepeat, "Times to submit each page URL")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		pollWait = flag.Duration("wait", defaultPollWait, "Maximum wait per evaluation")
		logFile  = flag.String("log", "", "Log file for test output (default: smoketest_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	urls := flag.Args()
	if len(urls) == 0 {
		urls = defaultURLs
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:  *baseURL,
		URLs:     urls,
		Repeat:   *repeat,
		Workers:  *workers,
		Timeout:  *timeout,
		PollWait: *pollWait,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		return
	}
}
