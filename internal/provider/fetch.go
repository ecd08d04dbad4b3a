package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vkotov/fundlens/internal/cache"
	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/util"
	"github.com/vkotov/fundlens/internal/worker"
	"golang.org/x/net/html"
)

// PageFetcher retrieves source pages politely: robots.txt compliance,
// per-domain rate limiting, bounded reads, and caching of fetched bodies.
type PageFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	limiter    *worker.Limiter
	robots     *RobotsChecker
}

// NewPageFetcher creates a fetcher from HTTP and concurrency settings.
// pageCache may be nil to disable caching.
func NewPageFetcher(httpConfig model.HTTPConfig, concurrency model.ConcurrencyConfig, pageCache cache.Cache) *PageFetcher {
	rps := concurrency.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &PageFetcher{
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
		userAgent: httpConfig.UserAgent,
		maxBytes:  httpConfig.MaxBodyBytes,
		cache:     pageCache,
		limiter:   worker.NewLimiter(rps, concurrency.Burst),
		robots:    NewRobotsChecker(httpConfig.UserAgent, httpConfig.Timeout),
	}
}

// FetchTitle retrieves the page title for a source URL
func (f *PageFetcher) FetchTitle(ctx context.Context, rawURL string) (string, error) {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	title := findTitle(doc)
	if title == "" {
		return "", fmt.Errorf("no title in %s", rawURL)
	}
	return title, nil
}

// Fetch retrieves a page body, honoring robots.txt and rate limits
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.cache != nil {
		if body, found := f.cache.Get(key); found {
			return string(body), nil
		}
	}

	if !f.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, body, 0)
	}
	return string(body), nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if title := findTitle(child); title != "" {
			return title
		}
	}
	return ""
}
