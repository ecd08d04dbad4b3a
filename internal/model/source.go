package model

import "time"

// Source is a single piece of provenance backing a claim. Immutable once created.
type Source struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Category   SourceCategory `json:"category"`
	Platform   string         `json:"platform,omitempty"` // Data-platform sub-tag (e.g. "crunchbase")
	Title      string         `json:"title,omitempty"`
	CapturedAt time.Time      `json:"captured_at"`
}

// SourceCategory classifies where a source comes from
type SourceCategory string

const (
	CategoryCompanyPress  SourceCategory = "company_press"  // Company press release/newsroom
	CategorySECFiling     SourceCategory = "sec_filing"     // SEC/regulatory filings
	CategoryBusinessPress SourceCategory = "business_press" // Independent business press
	CategoryInvestorBlog  SourceCategory = "investor_blog"  // Investor-firm blog posts
	CategoryDataPlatform  SourceCategory = "data_platform"  // Crunchbase/PitchBook-class platforms
	CategoryEncyclopedia  SourceCategory = "encyclopedia"   // Wikipedia and similar
	CategoryDirectory     SourceCategory = "directory"      // Generic company directories
	CategorySocial        SourceCategory = "social"         // X, LinkedIn, etc.
	CategoryUnknown       SourceCategory = "unknown"
)

// DefaultTrustWeights is the shipped trust hierarchy (higher = more trusted).
// Deployments recalibrate it through TrustConfig, never by editing code.
func DefaultTrustWeights() map[string]int {
	return map[string]int{
		string(CategoryCompanyPress):  100,
		string(CategorySECFiling):     95,
		string(CategoryBusinessPress): 80,
		string(CategoryInvestorBlog):  70,
		string(CategoryDataPlatform):  60,
		string(CategoryEncyclopedia):  40,
		string(CategoryDirectory):     30,
		string(CategorySocial):        20,
		string(CategoryUnknown):       10,
	}
}
