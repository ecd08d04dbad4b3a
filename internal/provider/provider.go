package provider

import (
	"context"

	"github.com/vkotov/fundlens/internal/model"
)

// DataProvider supplies timestamped, sourced claims about a company's
// funding. Implementations return an empty slice for "no data found";
// errors are reserved for transport failures, which the caller catches
// and treats as no evidence.
type DataProvider interface {
	FetchFundingClaims(ctx context.Context, companyID, companyName, domain string) ([]model.Claim, error)
}

func parseConfidence(s string) model.ConfidenceLevel {
	switch s {
	case "high":
		return model.ConfidenceHigh
	case "medium":
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
