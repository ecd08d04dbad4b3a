package verify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/util"
)

const maxRetries = 3

// sleepFunc is the delay between retries, injectable for tests
var sleepFunc = time.Sleep

// CheckResult is the outcome of probing one source link
type CheckResult struct {
	SourceID    string
	URL         string
	Reachable   bool
	Dead        bool
	StatusCode  int
	RedirectURL string
	Error       string
}

// Checker probes snapshot source links concurrently with HEAD requests.
// A link that answers 2xx/3xx is reachable; 404 and 410 mark it dead.
type Checker struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
}

// NewChecker creates a source-link checker
func NewChecker(httpConfig model.HTTPConfig, maxWorkers int) *Checker {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Checker{
		httpClient: &http.Client{
			Timeout: httpConfig.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpConfig.HTTPProxy, httpConfig.HTTPSProxy, httpConfig.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  httpConfig.UserAgent,
		maxWorkers: maxWorkers,
	}
}

// Check probes all sources and returns one result per source, in input order
func (c *Checker) Check(ctx context.Context, sources []model.Source) []CheckResult {
	if len(sources) == 0 {
		return []CheckResult{}
	}

	results := make([]CheckResult, len(sources))
	semaphore := make(chan struct{}, c.maxWorkers)

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func(idx int, src model.Source) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = CheckResult{
					SourceID: src.ID,
					URL:      src.URL,
					Error:    "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = c.checkWithRetry(ctx, src)
		}(i, source)
	}
	wg.Wait()

	return results
}

func (c *Checker) checkWithRetry(ctx context.Context, source model.Source) CheckResult {
	var result CheckResult
	for attempt := 0; attempt < maxRetries; attempt++ {
		result = c.checkOne(ctx, source)
		if !isRetryable(result) {
			return result
		}
		if attempt < maxRetries-1 {
			sleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return result
}

func (c *Checker) checkOne(ctx context.Context, source model.Source) CheckResult {
	result := CheckResult{SourceID: source.ID, URL: source.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source.URL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.Dead = true
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Reachable = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.Dead = true
	}

	if resp.Request.URL.String() != source.URL {
		result.RedirectURL = resp.Request.URL.String()
	}
	return result
}

func isRetryable(result CheckResult) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

// Summary condenses check results for display
type Summary struct {
	Total     int
	Reachable int
	Dead      int
	Failed    int
}

// Summarize tallies check results
func Summarize(results []CheckResult) Summary {
	summary := Summary{Total: len(results)}
	for _, result := range results {
		switch {
		case result.Reachable:
			summary.Reachable++
		case result.Dead:
			summary.Dead++
		default:
			summary.Failed++
		}
	}
	return summary
}
