package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vkotov/fundlens/internal/classify"
	"github.com/vkotov/fundlens/internal/llm"
	"github.com/vkotov/fundlens/internal/model"
)

// LLMProvider produces funding claims through a research LLM. Each returned
// source URL is classified into a provenance category and stamped with the
// capture time; the reconciler consumes the result unchanged.
type LLMProvider struct {
	llm        llm.Provider
	classifier *classify.Classifier
	fetcher    *PageFetcher // optional, fills missing source titles
	now        func() time.Time
}

// NewLLMProvider creates a provider backed by the given LLM. The fetcher is
// optional; when nil, source titles stay as the LLM reported them.
func NewLLMProvider(llmProvider llm.Provider, classifier *classify.Classifier, fetcher *PageFetcher) *LLMProvider {
	return &LLMProvider{
		llm:        llmProvider,
		classifier: classifier,
		fetcher:    fetcher,
		now:        time.Now,
	}
}

// FetchFundingClaims researches one company and converts the raw assertions
// into typed claims
func (p *LLMProvider) FetchFundingClaims(ctx context.Context, companyID, companyName, domain string) ([]model.Claim, error) {
	raw, err := p.llm.ResearchFunding(ctx, llm.ResearchRequest{
		CompanyName: companyName,
		Domain:      domain,
	})
	if err != nil {
		return nil, fmt.Errorf("research %s: %w", companyName, err)
	}

	captured := p.now().UTC()
	claims := make([]model.Claim, 0, len(raw))
	for _, rawClaim := range raw {
		claims = append(claims, p.convert(ctx, companyID, rawClaim, captured))
	}
	return claims, nil
}

func (p *LLMProvider) convert(ctx context.Context, companyID string, raw llm.RawClaim, captured time.Time) model.Claim {
	claim := model.Claim{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		Statement:  raw.Statement,
		Confidence: parseConfidence(raw.Confidence),
		Status:     model.StatusUnverified,
		Fields: model.FundingFields{
			RoundType:      raw.RoundType,
			Amount:         raw.Amount,
			LeadInvestor:   raw.LeadInvestor,
			Valuation:      raw.Valuation,
			ValuationBasis: model.ValuationBasis(raw.ValuationBasis),
		},
	}

	if raw.Date != "" {
		if date, err := time.Parse("2006-01-02", raw.Date); err == nil {
			claim.Fields.Date = &date
		}
	}

	for _, rawSource := range raw.Sources {
		if rawSource.URL == "" {
			continue
		}
		category, platform := p.classifier.ClassifyWithPlatform(rawSource.URL)
		source := model.Source{
			ID:         uuid.NewString(),
			URL:        rawSource.URL,
			Category:   category,
			Platform:   platform,
			Title:      rawSource.Title,
			CapturedAt: captured,
		}
		if source.Title == "" && p.fetcher != nil {
			if title, err := p.fetcher.FetchTitle(ctx, rawSource.URL); err == nil {
				source.Title = title
			}
		}
		claim.Sources = append(claim.Sources, source)
	}

	return claim
}
