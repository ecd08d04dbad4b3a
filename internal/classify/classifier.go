package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/vkotov/fundlens/internal/model"
)

// pressPathRe matches newsroom-style URL paths
var pressPathRe = regexp.MustCompile(`(?i)/(press|press-releases|news|newsroom|blog|media)(/|$)`)

// Classifier maps a URL to a source category and an integer trust weight.
// Pure and total: every input maps to some category, malformed URLs included.
type Classifier struct {
	config       *model.ClassifyConfig
	weights      map[model.SourceCategory]int
	regulatory   map[string]bool
	press        map[string]bool
	investor     map[string]bool
	platforms    map[string]string
	encyclopedia map[string]bool
	directory    map[string]bool
	social       map[string]bool
}

// NewClassifier creates a classifier from the given allow-lists and trust table.
// Nil configs fall back to the shipped defaults.
func NewClassifier(config *model.ClassifyConfig, trust *model.TrustConfig) *Classifier {
	if config == nil {
		config = &model.DefaultConfig().Classify
	}

	weights := make(map[model.SourceCategory]int)
	for category, weight := range model.DefaultTrustWeights() {
		weights[model.SourceCategory(category)] = weight
	}
	if trust != nil {
		for category, weight := range trust.Weights {
			weights[model.SourceCategory(category)] = weight
		}
	}

	c := &Classifier{
		config:       config,
		weights:      weights,
		regulatory:   domainSet(config.RegulatoryDomains),
		press:        domainSet(config.BusinessPressDomains),
		investor:     domainSet(config.InvestorBlogDomains),
		platforms:    make(map[string]string),
		encyclopedia: domainSet(config.EncyclopediaDomains),
		directory:    domainSet(config.DirectoryDomains),
		social:       domainSet(config.SocialDomains),
	}
	for domain, platform := range config.DataPlatformDomains {
		c.platforms[strings.ToLower(domain)] = platform
	}
	return c
}

// Classify returns the category for a URL
func (c *Classifier) Classify(rawURL string) model.SourceCategory {
	category, _ := c.ClassifyWithPlatform(rawURL)
	return category
}

// ClassifyWithPlatform returns the category plus the platform sub-tag for
// data-platform sources. Heuristics run in priority order, first match wins.
func (c *Classifier) ClassifyWithPlatform(rawURL string) (model.SourceCategory, string) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.CategoryUnknown, ""
	}

	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	// Explicit host overrides from config win over everything
	if c.config.DomainMap != nil {
		if override, ok := c.config.DomainMap[host]; ok {
			return model.SourceCategory(override), ""
		}
	}

	// A press/newsroom path on a host that is not an independent outlet
	// is the company's own press release
	if pressPathRe.MatchString(parsed.Path) && !c.independentOutlet(host) {
		return model.CategoryCompanyPress, ""
	}

	if matchDomain(c.regulatory, host) || strings.HasSuffix(host, ".gov") {
		return model.CategorySECFiling, ""
	}
	if matchDomain(c.press, host) {
		return model.CategoryBusinessPress, ""
	}
	if matchDomain(c.investor, host) {
		return model.CategoryInvestorBlog, ""
	}
	if platform := c.platformFor(host); platform != "" {
		return model.CategoryDataPlatform, platform
	}
	if matchDomain(c.encyclopedia, host) {
		return model.CategoryEncyclopedia, ""
	}
	if matchDomain(c.social, host) {
		return model.CategorySocial, ""
	}
	if matchDomain(c.directory, host) {
		return model.CategoryDirectory, ""
	}

	return model.CategoryUnknown, ""
}

// Weight returns the trust weight for a category, defaulting to the
// unknown weight for categories missing from the table
func (c *Classifier) Weight(category model.SourceCategory) int {
	if weight, ok := c.weights[category]; ok {
		return weight
	}
	return c.weights[model.CategoryUnknown]
}

// independentOutlet reports whether the host belongs to any known
// third-party source rather than the company itself
func (c *Classifier) independentOutlet(host string) bool {
	return matchDomain(c.regulatory, host) ||
		matchDomain(c.press, host) ||
		matchDomain(c.investor, host) ||
		c.platformFor(host) != "" ||
		matchDomain(c.encyclopedia, host) ||
		matchDomain(c.directory, host) ||
		matchDomain(c.social, host)
}

func (c *Classifier) platformFor(host string) string {
	if platform, ok := c.platforms[host]; ok {
		return platform
	}
	for domain, platform := range c.platforms {
		if strings.HasSuffix(host, "."+domain) {
			return platform
		}
	}
	return ""
}

func domainSet(domains []string) map[string]bool {
	set := make(map[string]bool, len(domains))
	for _, domain := range domains {
		set[strings.ToLower(domain)] = true
	}
	return set
}

// matchDomain checks exact or subdomain suffix match, the same way the
// host allow-lists are matched throughout the codebase
func matchDomain(set map[string]bool, host string) bool {
	if set[host] {
		return true
	}
	for domain := range set {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
