package model

import "time"

// FundingSnapshot is the reconciler's single resolved view of a company's most
// recent funding round. It is always derived wholesale from the current claim
// set; it is never patched field-by-field against a previous snapshot.
type FundingSnapshot struct {
	LastRoundDate       *time.Time      `json:"last_round_date,omitempty"`
	LastRoundType       string          `json:"last_round_type,omitempty"`
	Amount              string          `json:"amount,omitempty"`
	LeadInvestor        string          `json:"lead_investor,omitempty"`
	Valuation           string          `json:"valuation,omitempty"`
	ValuationBasis      ValuationBasis  `json:"valuation_basis,omitempty"`
	ValuationConfidence ConfidenceLevel `json:"valuation_confidence"`
	Sources             []Source        `json:"sources,omitempty"`
	OverallConfidence   ConfidenceLevel `json:"overall_confidence"`
	HasConflicts        bool            `json:"has_conflicts"`
	ResolutionNote      string          `json:"resolution_note,omitempty"`
	Freshness           FreshnessLevel  `json:"freshness"`
}

// FreshnessLevel classifies the age of a funding event relative to now.
// It is derived from the resolved round date, never stored independently.
type FreshnessLevel string

const (
	FreshnessFresh  FreshnessLevel = "fresh"  // < 3 months
	FreshnessRecent FreshnessLevel = "recent" // 3-12 months
	FreshnessStale  FreshnessLevel = "stale"  // 12-24 months
	FreshnessOld    FreshnessLevel = "old"    // > 24 months
)

// FreshnessOf classifies a round date against a reference time.
// A nil date is treated as the lowest tier for display purposes.
func FreshnessOf(date *time.Time, now time.Time) FreshnessLevel {
	if date == nil {
		return FreshnessOld
	}
	months := monthsBetween(*date, now)
	switch {
	case months < 3:
		return FreshnessFresh
	case months < 12:
		return FreshnessRecent
	case months < 24:
		return FreshnessStale
	default:
		return FreshnessOld
	}
}

func monthsBetween(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months
}
