package smoketest

import "time"

// Config holds configuration for the evaluation smoke test.
type Config struct {
	BaseURL  string        // Base URL of the service
	URLs     []string      // Page URLs to submit for evaluation
	Repeat   int           // Times to submit each URL
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	PollWait time.Duration // Maximum time to wait for one evaluation
	LogFile  string        // Log file for test output
	Verbose  bool          // Enable verbose logging
}

// AckResponse is the response from evaluation submission.
type AckResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	EvaluationID string `json:"evaluationId"`
	URL          string `json:"url"`
}

// AnalysisResult is the per-dimension shape in the full report.
type AnalysisResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
	Issues []struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
	} `json:"issues"`
}

// ReportResponse is the full-report shape once an evaluation settles.
type ReportResponse struct {
	Status           string          `json:"status"`
	EvaluationID     string          `json:"evaluationId"`
	URL              string          `json:"url"`
	AnalysisComplete bool            `json:"analysisComplete"`
	SEO              *AnalysisResult `json:"seoAnalysis"`
	Mobile           *AnalysisResult `json:"mobileAnalysis"`
	Performance      *AnalysisResult `json:"performanceAnalysis"`
	Accessibility    *AnalysisResult `json:"accessibilityAnalysis"`
	LLM              *struct {
		Summary         string   `json:"summary"`
		Recommendations []string `json:"recommendations"`
	} `json:"llmAnalysis"`
	PendingAnalyses []string `json:"pendingAnalyses"`
}

// Stats holds smoke test statistics.
type Stats struct {
	Submitted      int
	Accepted       int
	Rejected       int
	Completed      int
	TimedOut       int
	VerifyFailures int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
