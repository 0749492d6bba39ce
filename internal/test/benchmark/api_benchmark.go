// Package benchmark drives concurrent load against the HTTP API.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// APIBenchmark fires Requests calls with at most Concurrency in flight
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult aggregates the outcome of one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// RequestResult is the outcome of a single call
type RequestResult struct {
	Duration   time.Duration
	StatusCode int
	Error      error
}

// NewAPIBenchmark creates a runner against baseURL
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RunGET benchmarks a GET endpoint
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.runTest(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST benchmarks a JSON POST endpoint
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPost, path, payload)
}

// RunPUT benchmarks a JSON PUT endpoint
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runJSON(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: method,
			Errors: []string{fmt.Sprintf("encode payload: %v", err)},
		}
	}
	return b.runTest(method, url, jsonData)
}

func (b *APIBenchmark) do(method, url string, payload []byte) RequestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return RequestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return RequestResult{Error: err}
	}
	defer resp.Body.Close()
	// drain so the connection is reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return RequestResult{Duration: time.Since(start), StatusCode: resp.StatusCode}
}

func (b *APIBenchmark) runTest(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan RequestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()
			results <- b.do(method, url, payload)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		StatusCodes:   make(map[int]int),
	}
	var totalTime time.Duration
	completed := 0
	for r := range results {
		if r.Error != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.Error.Error())
			continue
		}

		completed++
		totalTime += r.Duration
		if result.MinTime == 0 || r.Duration < result.MinTime {
			result.MinTime = r.Duration
		}
		if r.Duration > result.MaxTime {
			result.MaxTime = r.Duration
		}

		result.StatusCodes[r.StatusCode]++
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	result.TotalTime = time.Since(startTime)
	if result.TotalTime > 0 {
		result.RequestsPerSec = float64(b.Requests) / result.TotalTime.Seconds()
	}
	if completed > 0 {
		result.AverageTime = totalTime / time.Duration(completed)
	}
	return result
}

// SuccessRate is the share of 2xx responses in percent
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// String renders a human readable report
func (r *BenchmarkResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", r.Method, r.URL)
	fmt.Fprintf(&sb, "  concurrency=%d requests=%d success=%d failure=%d\n",
		r.Concurrency, r.TotalRequests, r.SuccessCount, r.FailureCount)
	fmt.Fprintf(&sb, "  total=%s avg=%s min=%s max=%s rps=%.2f\n",
		r.TotalTime, r.AverageTime, r.MinTime, r.MaxTime, r.RequestsPerSec)

	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(&sb, "  %d: %d\n", code, r.StatusCodes[code])
	}

	for i, err := range r.Errors {
		if i >= 5 {
			fmt.Fprintf(&sb, "  ... %d more errors\n", len(r.Errors)-5)
			break
		}
		fmt.Fprintf(&sb, "  error: %s\n", err)
	}
	return sb.String()
}
