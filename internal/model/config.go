package model

import "time"

// Config is the complete fundlens configuration
type Config struct {
	Trust       TrustConfig       `yaml:"trust" json:"trust"`
	Classify    ClassifyConfig    `yaml:"classify" json:"classify"`
	Reconcile   ReconcileConfig   `yaml:"reconcile" json:"reconcile"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Storage     StorageConfig     `yaml:"storage" json:"storage"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// TrustConfig maps source categories to integer trust weights.
// Trust judgments are a policy decision, so the table is configuration,
// not code; it ships with the documented defaults.
type TrustConfig struct {
	Weights map[string]int `yaml:"weights" json:"weights"`
}

// ClassifyConfig holds the domain allow-lists driving source classification
type ClassifyConfig struct {
	// DomainMap overrides classification for specific hosts (host -> category)
	DomainMap map[string]string `yaml:"domain_map,omitempty" json:"domain_map,omitempty"`

	RegulatoryDomains    []string          `yaml:"regulatory_domains" json:"regulatory_domains"`
	BusinessPressDomains []string          `yaml:"business_press_domains" json:"business_press_domains"`
	InvestorBlogDomains  []string          `yaml:"investor_blog_domains" json:"investor_blog_domains"`
	DataPlatformDomains  map[string]string `yaml:"data_platform_domains" json:"data_platform_domains"` // host -> platform name
	EncyclopediaDomains  []string          `yaml:"encyclopedia_domains" json:"encyclopedia_domains"`
	DirectoryDomains     []string          `yaml:"directory_domains" json:"directory_domains"`
	SocialDomains        []string          `yaml:"social_domains" json:"social_domains"`
}

// ReconcileConfig tunes the claim reconciler
type ReconcileConfig struct {
	// GroupingWindowDays is the date window within which claims are assumed
	// to describe the same funding round
	GroupingWindowDays int `yaml:"grouping_window_days" json:"grouping_window_days"`
	// SourceCap bounds the number of sources carried on a snapshot
	SourceCap int `yaml:"source_cap" json:"source_cap"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// LLMConfig configures the research LLM provider
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // from environment, never persisted
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// CacheConfig controls caching of provider fetches
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// ConcurrencyConfig tunes worker counts and per-domain rate limits
type ConcurrencyConfig struct {
	ValidationWorkers int     `yaml:"validation_workers" json:"validation_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// StorageConfig controls where sprint/company data is persisted
type StorageConfig struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the shipped defaults
func DefaultConfig() *Config {
	return &Config{
		Trust: TrustConfig{
			Weights: DefaultTrustWeights(),
		},
		Classify: ClassifyConfig{
			RegulatoryDomains: []string{"sec.gov", "edgar.sec.gov", "companieshouse.gov.uk"},
			BusinessPressDomains: []string{
				"techcrunch.com", "bloomberg.com", "reuters.com", "forbes.com",
				"wsj.com", "ft.com", "theinformation.com", "axios.com",
				"cnbc.com", "businessinsider.com",
			},
			InvestorBlogDomains: []string{
				"a16z.com", "sequoiacap.com", "accel.com", "greylock.com",
				"kleinerperkins.com", "benchmark.com", "lsvp.com",
			},
			DataPlatformDomains: map[string]string{
				"crunchbase.com": "crunchbase",
				"pitchbook.com":  "pitchbook",
				"dealroom.co":    "dealroom",
			},
			EncyclopediaDomains: []string{"wikipedia.org", "britannica.com"},
			DirectoryDomains:    []string{"yellowpages.com", "opencorporates.com", "zoominfo.com"},
			SocialDomains:       []string{"twitter.com", "x.com", "linkedin.com", "facebook.com"},
		},
		Reconcile: ReconcileConfig{
			GroupingWindowDays: 60,
			SourceCap:          5,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Fundlens/0.1 (+https://github.com/vkotov/fundlens)",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   60,
			MaxTokens: 8000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ValidationWorkers: 4,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Output: OutputConfig{},
	}
}
