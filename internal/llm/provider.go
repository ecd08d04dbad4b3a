package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for research LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// DiscoverCandidates generates candidate companies matching a thesis
	DiscoverCandidates(ctx context.Context, req DiscoveryRequest) ([]Candidate, error)

	// ResearchFunding returns raw funding claims about one company.
	// Providers return an empty slice for "no data found"; errors are
	// reserved for transport failures.
	ResearchFunding(ctx context.Context, req ResearchRequest) ([]RawClaim, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// DiscoveryRequest describes the thesis to generate candidates for
type DiscoveryRequest struct {
	Thesis          string
	KeywordsInclude []string
	KeywordsExclude []string
	StageFocus      string
	Geography       string
	TargetCount     int
}

// Candidate is one generated company before it enters the store
type Candidate struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website,omitempty"`
	Location      string   `json:"location,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	FitScore      int      `json:"fit_score"`
	FitReasons    []string `json:"fit_reasons,omitempty"`
	StageEstimate string   `json:"stage_estimate,omitempty"`
	StageBasis    string   `json:"stage_basis,omitempty"`
	NextAction    string   `json:"next_action,omitempty"`
}

// ResearchRequest describes the company to research funding claims for
type ResearchRequest struct {
	CompanyName string
	Domain      string
}

// RawClaim is a funding assertion as returned by the LLM, before source
// classification and ID assignment
type RawClaim struct {
	Statement      string      `json:"statement"`
	Confidence     string      `json:"confidence"` // high, medium, low
	RoundType      string      `json:"round_type,omitempty"`
	Date           string      `json:"date,omitempty"` // YYYY-MM-DD
	Amount         string      `json:"amount,omitempty"`
	LeadInvestor   string      `json:"lead_investor,omitempty"`
	Valuation      string      `json:"valuation,omitempty"`
	ValuationBasis string      `json:"valuation_basis,omitempty"`
	Sources        []RawSource `json:"sources,omitempty"`
}

// RawSource is a provenance reference attached to a raw claim
type RawSource struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (e.g. a local server)
	BaseURL string

	// Timeout for API requests in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   60,
		MaxTokens: 8000,
	}
}

// BuildDiscoveryPrompt constructs the candidate-generation prompt
func BuildDiscoveryPrompt(req DiscoveryRequest) string {
	include := "none specified"
	if len(req.KeywordsInclude) > 0 {
		include = strings.Join(req.KeywordsInclude, ", ")
	}
	exclude := "none"
	if len(req.KeywordsExclude) > 0 {
		exclude = strings.Join(req.KeywordsExclude, ", ")
	}
	count := req.TargetCount
	if count <= 0 {
		count = 30
	}

	return fmt.Sprintf(`You are a senior VC researcher. Generate a list of %d companies that match this investment thesis.

THESIS:
%s

CRITERIA:
- Stage preference: %s
- Geography: %s
- Include keywords: %s
- Exclude keywords: %s

Return ONLY a JSON array. Each element:
{
  "name": "...",
  "description": "one sentence",
  "website": "https://...",
  "location": "City, Country",
  "tags": ["..."],
  "fit_score": 0-100,
  "fit_reasons": ["..."],
  "stage_estimate": "Seed|Series A|Series B|Series C+|Growth",
  "stage_basis": "how the stage was inferred",
  "next_action": "what to check next (only when fit is uncertain)"
}
No prose before or after the JSON.`,
		count, req.Thesis, req.StageFocus, req.Geography, include, exclude)
}

// BuildResearchPrompt constructs the funding-research prompt
func BuildResearchPrompt(req ResearchRequest) string {
	domain := req.Domain
	if domain == "" {
		domain = "unknown"
	}

	return fmt.Sprintf(`You are a VC research analyst collecting funding facts about a company. Report every independently sourced assertion you know about the company's most recent funding round, one assertion per source. Do NOT merge disagreeing sources into one answer; report each as its own claim so conflicts stay visible.

COMPANY: %s
DOMAIN: %s

Return ONLY a JSON array. Each element:
{
  "statement": "one sentence restating the assertion",
  "confidence": "high|medium|low",
  "round_type": "Seed|Series A|Series B|...",
  "date": "YYYY-MM-DD",
  "amount": "$150M",
  "lead_investor": "...",
  "valuation": "$1.2B",
  "valuation_basis": "direct|secondary|implied|rumor|estimate",
  "sources": [{"url": "https://...", "title": "..."}]
}
Omit fields the source does not assert. Return [] when nothing is known.
No prose before or after the JSON.`,
		req.CompanyName, domain)
}
