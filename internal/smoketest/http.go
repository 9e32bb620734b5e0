package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// checkServiceHealth verifies the service answers on /healthz.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(config.BaseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", config.BaseURL, err)
	}
	body, _ := readResponseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d: %s", resp.StatusCode, string(body))
	}

	log.Println("✅ Service is healthy")
	return nil
}

// submitEvaluations submits every URL concurrently and collects the
// evaluation ids the service handed back.
func submitEvaluations(ctx context.Context, config *Config, urls []string, stats *Stats) ([]string, error) {
	log.Printf("📤 Submitting %d evaluations with %d workers...", len(urls), config.Workers)

	client := newHTTPClient(config.Timeout)
	endpoint := config.BaseURL + "/api/evaluate"

	var (
		accepted int64
		rejected int64
		mu       sync.Mutex
		ids      []string
	)

	jobs := make(chan string, len(urls))
	for _, u := range urls {
		jobs <- u
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.Post(endpoint, map[string]string{"url": u})
				if err != nil {
					atomic.AddInt64(&rejected, 1)
					if config.Verbose {
						log.Printf("⚠️  Submission failed for %s: %v", u, err)
					}
					continue
				}
				body, err := readResponseBody(resp)
				if err != nil || resp.StatusCode != http.StatusOK {
					atomic.AddInt64(&rejected, 1)
					if config.Verbose {
						log.Printf("⚠️  Submission rejected for %s: status %d", u, resp.StatusCode)
					}
					continue
				}

				var ack AckResponse
				if err := json.Unmarshal(body, &ack); err != nil || ack.EvaluationID == "" {
					atomic.AddInt64(&rejected, 1)
					continue
				}

				atomic.AddInt64(&accepted, 1)
				mu.Lock()
				ids = append(ids, ack.EvaluationID)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stats.Submitted = len(urls)
	stats.Accepted = int(accepted)
	stats.Rejected = int(rejected)

	log.Printf("📤 Submission complete: %d accepted, %d rejected", accepted, rejected)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no evaluations were accepted")
	}
	return ids, nil
}

// pollReports polls the full-report endpoint for every evaluation until
// it settles or the per-evaluation wait expires.
func pollReports(ctx context.Context, config *Config, ids []string, stats *Stats) ([]ReportResponse, error) {
	log.Printf("⏳ Polling %d evaluations for completion...", len(ids))

	client := newHTTPClient(config.Timeout)

	var (
		mu      sync.Mutex
		reports []ReportResponse
		done    int64
		timeout int64
	)

	jobs := make(chan string, len(ids))
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				report, ok := pollOne(ctx, client, config, id)
				if !ok {
					atomic.AddInt64(&timeout, 1)
					continue
				}
				atomic.AddInt64(&done, 1)
				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stats.Completed = int(done)
	stats.TimedOut = int(timeout)

	log.Printf("⏳ Polling complete: %d settled, %d timed out", done, timeout)
	return reports, nil
}

func pollOne(ctx context.Context, client *HTTPClient, config *Config, id string) (ReportResponse, bool) {
	endpoint := config.BaseURL + "/api/full-report/" + id
	deadline := time.Now().Add(config.PollWait)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ReportResponse{}, false
		case <-time.After(200 * time.Millisecond):
		}

		resp, err := client.Get(endpoint)
		if err != nil {
			continue
		}
		body, err := readResponseBody(resp)
		if err != nil {
			continue
		}

		var report ReportResponse
		if err := json.Unmarshal(body, &report); err != nil {
			continue
		}
		if resp.StatusCode == http.StatusOK && report.AnalysisComplete {
			return report, true
		}
		if config.Verbose && len(report.PendingAnalyses) > 0 {
			log.Printf("⏳ %s still pending: %v", id, report.PendingAnalyses)
		}
	}
	return ReportResponse{}, false
}
