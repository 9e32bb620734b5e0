package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoketest_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))

	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	fmt.Println(`Evaluation smoke test

Submits page URLs to a running service, polls every evaluation until it
settles, and verifies the full reports.

Usage:
  smoketest [flags] [url ...]

Flags:
  -url string        Base URL of the service (default "http://localhost:8080")
  -repeat int        Times to submit each page URL (default 1)
  -workers int       Number of concurrent workers
  -timeout duration  HTTP request timeout (default 30s)
  -wait duration     Maximum wait per evaluation (default 2m)
  -log string        Log file for test output
  -verbose           Enable verbose logging

Page URLs default to a small built-in list when none are given.`)
}
