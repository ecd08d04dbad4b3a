package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vkotov/fundlens/internal/cache"
	"github.com/vkotov/fundlens/internal/classify"
	"github.com/vkotov/fundlens/internal/llm"
	"github.com/vkotov/fundlens/internal/model"
)

type stubLLM struct {
	raw []llm.RawClaim
	err error
}

func (s *stubLLM) Name() string { return "stub" }
func (s *stubLLM) DiscoverCandidates(context.Context, llm.DiscoveryRequest) ([]llm.Candidate, error) {
	return nil, nil
}
func (s *stubLLM) ResearchFunding(context.Context, llm.ResearchRequest) ([]llm.RawClaim, error) {
	return s.raw, s.err
}
func (s *stubLLM) IsAvailable(context.Context) bool { return true }

func testClassifier() *classify.Classifier {
	cfg := model.DefaultConfig()
	return classify.NewClassifier(&cfg.Classify, &cfg.Trust)
}

func TestLLMProviderConvertsRawClaims(t *testing.T) {
	raw := []llm.RawClaim{{
		Statement:    "Acme raised a $42M Series B",
		Confidence:   "high",
		RoundType:    "Series B",
		Date:         "2026-05-15",
		Amount:       "$42M",
		LeadInvestor: "Alpha Capital",
		Sources: []llm.RawSource{
			{URL: "https://techcrunch.com/acme", Title: "Acme raises $42M"},
			{URL: "https://www.crunchbase.com/organization/acme"},
			{URL: ""},
		},
	}}

	p := NewLLMProvider(&stubLLM{raw: raw}, testClassifier(), nil)
	claims, err := p.FetchFundingClaims(context.Background(), "c1", "Acme", "acme.example")
	if err != nil {
		t.Fatalf("FetchFundingClaims: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}

	claim := claims[0]
	if claim.ID == "" || claim.CompanyID != "c1" {
		t.Errorf("claim identity wrong: %+v", claim)
	}
	if claim.Confidence != model.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", claim.Confidence)
	}
	if claim.Status != model.StatusUnverified {
		t.Errorf("status = %q, want unverified", claim.Status)
	}
	if claim.Fields.Date == nil || claim.Fields.Date.Format("2006-01-02") != "2026-05-15" {
		t.Errorf("date not parsed: %+v", claim.Fields.Date)
	}

	if len(claim.Sources) != 2 {
		t.Fatalf("empty-URL source should be dropped, got %d sources", len(claim.Sources))
	}
	if claim.Sources[0].Category != model.CategoryBusinessPress {
		t.Errorf("source 0 category = %q, want business_press", claim.Sources[0].Category)
	}
	if claim.Sources[1].Category != model.CategoryDataPlatform || claim.Sources[1].Platform != "crunchbase" {
		t.Errorf("source 1 = %+v, want data_platform/crunchbase", claim.Sources[1])
	}
	if claim.Sources[0].CapturedAt.IsZero() {
		t.Error("capture time not stamped")
	}
}

func TestLLMProviderBadDateIgnored(t *testing.T) {
	raw := []llm.RawClaim{{
		Statement:  "Acme raised money at some point",
		Confidence: "low",
		RoundType:  "Seed",
		Date:       "spring 2024",
	}}

	p := NewLLMProvider(&stubLLM{raw: raw}, testClassifier(), nil)
	claims, err := p.FetchFundingClaims(context.Background(), "c1", "Acme", "")
	if err != nil {
		t.Fatalf("FetchFundingClaims: %v", err)
	}
	if claims[0].Fields.Date != nil {
		t.Errorf("unparseable date should be dropped, got %v", claims[0].Fields.Date)
	}
}

func TestLLMProviderTransportError(t *testing.T) {
	p := NewLLMProvider(&stubLLM{err: errors.New("api unavailable")}, testClassifier(), nil)

	if _, err := p.FetchFundingClaims(context.Background(), "c1", "Acme", ""); err == nil {
		t.Error("expected transport error to surface")
	}
}

func TestFixtureProviderExercisesConflict(t *testing.T) {
	p := NewFixtureProvider(testClassifier())

	claims, err := p.FetchFundingClaims(context.Background(), "demo-1", "Acme", "")
	if err != nil {
		t.Fatalf("FetchFundingClaims: %v", err)
	}
	if len(claims) != 3 {
		t.Fatalf("expected 3 demo claims, got %d", len(claims))
	}

	amounts := map[string]bool{}
	for _, claim := range claims {
		if claim.CompanyID != "demo-1" {
			t.Errorf("claim company = %q, want demo-1", claim.CompanyID)
		}
		if claim.Fields.Amount != "" {
			amounts[claim.Fields.Amount] = true
		}
	}
	if len(amounts) < 2 {
		t.Errorf("demo claims should disagree on amount, got %v", amounts)
	}
}

func TestPageFetcherFetchAndCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits++
		_, _ = w.Write([]byte("<html><head><title>Acme raises $42M</title></head></html>"))
	}))
	defer server.Close()

	httpCfg := model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "fundlens-test", MaxBodyBytes: 1 << 20}
	concurrency := model.ConcurrencyConfig{RequestsPerSecond: 100, Burst: 10}
	fetcher := NewPageFetcher(httpCfg, concurrency, cache.NewMemory(time.Minute))

	title, err := fetcher.FetchTitle(context.Background(), server.URL+"/press")
	if err != nil {
		t.Fatalf("FetchTitle: %v", err)
	}
	if title != "Acme raises $42M" {
		t.Errorf("title = %q", title)
	}

	// Second fetch is served from cache
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/press"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 upstream hit, got %d", hits)
	}
}

func TestPageFetcherHonorsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	httpCfg := model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "fundlens-test", MaxBodyBytes: 1 << 20}
	concurrency := model.ConcurrencyConfig{RequestsPerSecond: 100, Burst: 10}
	fetcher := NewPageFetcher(httpCfg, concurrency, nil)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Error("expected robots.txt to block the fetch")
	}
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/public"); err != nil {
		t.Errorf("allowed path should fetch: %v", err)
	}
}

func TestPageFetcherBoundsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for i := 0; i < 1000; i++ {
			_, _ = w.Write([]byte("0123456789"))
		}
	}))
	defer server.Close()

	httpCfg := model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "fundlens-test", MaxBodyBytes: 100}
	concurrency := model.ConcurrencyConfig{RequestsPerSecond: 100, Burst: 10}
	fetcher := NewPageFetcher(httpCfg, concurrency, nil)

	body, err := fetcher.Fetch(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("body length = %d, want 100", len(body))
	}
}
