package classify

import (
	"testing"

	"github.com/vkotov/fundlens/internal/model"
)

func TestClassifier_Categories(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		url      string
		expected model.SourceCategory
		desc     string
	}{
		{
			url:      "https://acme.io/press/series-b-announcement",
			expected: model.CategoryCompanyPress,
			desc:     "press path on company domain",
		},
		{
			url:      "https://acme.io/newsroom/2025/funding",
			expected: model.CategoryCompanyPress,
			desc:     "newsroom path on company domain",
		},
		{
			url:      "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany",
			expected: model.CategorySECFiling,
			desc:     "SEC filing",
		},
		{
			url:      "https://techcrunch.com/2025/06/01/acme-raises-150m/",
			expected: model.CategoryBusinessPress,
			desc:     "business press outlet",
		},
		{
			url:      "https://a16z.com/announcement/investing-in-acme/",
			expected: model.CategoryInvestorBlog,
			desc:     "investor firm blog",
		},
		{
			url:      "https://www.crunchbase.com/organization/acme",
			expected: model.CategoryDataPlatform,
			desc:     "data platform",
		},
		{
			url:      "https://en.wikipedia.org/wiki/Acme_Corp",
			expected: model.CategoryEncyclopedia,
			desc:     "encyclopedia",
		},
		{
			url:      "https://x.com/acme/status/123",
			expected: model.CategorySocial,
			desc:     "social media",
		},
		{
			url:      "https://www.zoominfo.com/c/acme/42",
			expected: model.CategoryDirectory,
			desc:     "directory",
		},
		{
			url:      "https://randomsite.example/page",
			expected: model.CategoryUnknown,
			desc:     "unrecognized host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestClassifier_PressPathOnOutletIsNotCompanyPress(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	// A /news/ path on an independent outlet must classify as the outlet,
	// not as the company's own press release
	result := classifier.Classify("https://techcrunch.com/news/acme-funding")
	if result != model.CategoryBusinessPress {
		t.Errorf("Expected business_press, got %v", result)
	}

	result = classifier.Classify("https://www.linkedin.com/news/acme")
	if result != model.CategorySocial {
		t.Errorf("Expected social, got %v", result)
	}
}

func TestClassifier_PlatformSubTag(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		url      string
		platform string
		desc     string
	}{
		{url: "https://www.crunchbase.com/organization/acme", platform: "crunchbase", desc: "crunchbase"},
		{url: "https://pitchbook.com/profiles/company/acme", platform: "pitchbook", desc: "pitchbook"},
		{url: "https://techcrunch.com/story", platform: "", desc: "non-platform has no sub-tag"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, platform := classifier.ClassifyWithPlatform(tt.url)
			if platform != tt.platform {
				t.Errorf("Expected platform %q for %s, got %q", tt.platform, tt.url, platform)
			}
		})
	}
}

func TestClassifier_MalformedURLs(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		url  string
		desc string
	}{
		{url: "not-a-url", desc: "plain text"},
		{url: "://missing-scheme", desc: "missing scheme"},
		{url: "", desc: "empty string"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != model.CategoryUnknown {
				t.Errorf("Expected unknown for %q, got %v", tt.url, result)
			}
		})
	}
}

func TestClassifier_PortHandling(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	result := classifier.Classify("https://techcrunch.com:443/story")
	if result != model.CategoryBusinessPress {
		t.Errorf("Expected business_press for URL with port, got %v", result)
	}
}

func TestClassifier_DomainMapOverride(t *testing.T) {
	config := model.DefaultConfig().Classify
	config.DomainMap = map[string]string{
		"acmeinsider.com": "business_press",
	}

	classifier := NewClassifier(&config, nil)

	result := classifier.Classify("https://acmeinsider.com/press/acme-raises")
	if result != model.CategoryBusinessPress {
		t.Errorf("Expected domain map override to business_press, got %v", result)
	}
}

func TestClassifier_Weights(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		category model.SourceCategory
		expected int
	}{
		{model.CategoryCompanyPress, 100},
		{model.CategorySECFiling, 95},
		{model.CategoryBusinessPress, 80},
		{model.CategoryInvestorBlog, 70},
		{model.CategoryDataPlatform, 60},
		{model.CategoryEncyclopedia, 40},
		{model.CategoryDirectory, 30},
		{model.CategorySocial, 20},
		{model.CategoryUnknown, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if weight := classifier.Weight(tt.category); weight != tt.expected {
				t.Errorf("Expected weight %d for %s, got %d", tt.expected, tt.category, weight)
			}
		})
	}

	// Unlisted category falls back to the unknown weight
	if weight := classifier.Weight(model.SourceCategory("made_up")); weight != 10 {
		t.Errorf("Expected fallback weight 10, got %d", weight)
	}
}

func TestClassifier_CustomWeights(t *testing.T) {
	trust := &model.TrustConfig{
		Weights: map[string]int{
			string(model.CategorySocial): 55,
		},
	}

	classifier := NewClassifier(nil, trust)

	if weight := classifier.Weight(model.CategorySocial); weight != 55 {
		t.Errorf("Expected overridden weight 55, got %d", weight)
	}
	// Untouched categories keep their defaults
	if weight := classifier.Weight(model.CategoryCompanyPress); weight != 100 {
		t.Errorf("Expected default weight 100, got %d", weight)
	}
}
