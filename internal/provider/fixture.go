package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/vkotov/fundlens/internal/classify"
	"github.com/vkotov/fundlens/internal/model"
)

// FixtureProvider returns deterministic demo claims for any company, so the
// full discover/validate/export flow runs without network access. The claim
// set deliberately disagrees on the amount to exercise conflict resolution.
type FixtureProvider struct {
	classifier *classify.Classifier
	now        func() time.Time
}

// NewFixtureProvider creates the demo provider
func NewFixtureProvider(classifier *classify.Classifier) *FixtureProvider {
	return &FixtureProvider{
		classifier: classifier,
		now:        time.Now,
	}
}

// FetchFundingClaims returns the demo claim set
func (p *FixtureProvider) FetchFundingClaims(_ context.Context, companyID, companyName, _ string) ([]model.Claim, error) {
	now := p.now().UTC()
	roundDate := now.AddDate(0, -4, 0)

	pressURL := fmt.Sprintf("https://techcrunch.com/demo/%s-raises-42m", companyID)
	platformURL := fmt.Sprintf("https://www.crunchbase.com/organization/%s", companyID)
	socialURL := fmt.Sprintf("https://x.com/%s/status/1", companyID)

	return []model.Claim{
		{
			ID:         companyID + "-claim-1",
			CompanyID:  companyID,
			Statement:  fmt.Sprintf("%s raised a $42M Series B led by Alpha Capital.", companyName),
			Confidence: model.ConfidenceHigh,
			Status:     model.StatusUnverified,
			Fields: model.FundingFields{
				RoundType:    "Series B",
				Date:         &roundDate,
				Amount:       "$42M",
				LeadInvestor: "Alpha Capital",
			},
			Sources: []model.Source{p.source(pressURL, "TechCrunch: demo coverage", now.AddDate(0, 0, -3))},
		},
		{
			ID:         companyID + "-claim-2",
			CompanyID:  companyID,
			Statement:  fmt.Sprintf("%s Series B listed at $45M on a data platform.", companyName),
			Confidence: model.ConfidenceMedium,
			Status:     model.StatusUnverified,
			Fields: model.FundingFields{
				RoundType:      "Series B",
				Amount:         "$45M",
				Valuation:      "$400M",
				ValuationBasis: model.BasisSecondary,
			},
			Sources: []model.Source{p.source(platformURL, "Crunchbase profile", now.AddDate(0, 0, -10))},
		},
		{
			ID:         companyID + "-claim-3",
			CompanyID:  companyID,
			Statement:  fmt.Sprintf("Founder of %s announced the round on social media.", companyName),
			Confidence: model.ConfidenceLow,
			Status:     model.StatusUnverified,
			Fields: model.FundingFields{
				RoundType: "Series B",
			},
			Sources: []model.Source{p.source(socialURL, "Founder announcement", now.AddDate(0, 0, -1))},
		},
	}, nil
}

func (p *FixtureProvider) source(url, title string, capturedAt time.Time) model.Source {
	category, platform := p.classifier.ClassifyWithPlatform(url)
	return model.Source{
		ID:         "demo-" + url,
		URL:        url,
		Category:   category,
		Platform:   platform,
		Title:      title,
		CapturedAt: capturedAt,
	}
}
