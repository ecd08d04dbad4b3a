package model

import "time"

// Claim is one sourced assertion about a company's funding history.
// Claims are produced by data providers and never mutated by the reconciler;
// the only state transition (verify) is performed by the surrounding application.
type Claim struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Statement  string          `json:"statement"`
	Sources    []Source        `json:"sources"`
	Confidence ConfidenceLevel `json:"confidence"`
	Status     ClaimStatus     `json:"status"`
	Fields     FundingFields   `json:"fields"`
}

// FundingFields carries the structured assertions of a claim. Providers fill
// these directly so the reconciler never has to re-parse prose statements.
type FundingFields struct {
	RoundType      string         `json:"round_type,omitempty"`
	Date           *time.Time     `json:"date,omitempty"`
	Amount         string         `json:"amount,omitempty"`
	LeadInvestor   string         `json:"lead_investor,omitempty"`
	Valuation      string         `json:"valuation,omitempty"`
	ValuationBasis ValuationBasis `json:"valuation_basis,omitempty"`
}

// Empty reports whether the claim asserts no funding fields at all.
// Such claims are skipped for field resolution but still contribute their
// sources and confidence to aggregate scoring.
func (f FundingFields) Empty() bool {
	return f.RoundType == "" && f.Date == nil && f.Amount == "" &&
		f.LeadInvestor == "" && f.Valuation == "" && f.ValuationBasis == ""
}

// ClaimStatus tracks the verification state of a claim
type ClaimStatus string

const (
	StatusVerified    ClaimStatus = "verified"
	StatusConflicting ClaimStatus = "conflicting"
	StatusUnverified  ClaimStatus = "unverified"
)

// ValuationBasis tags how a valuation figure was derived
type ValuationBasis string

const (
	BasisDirect    ValuationBasis = "direct"
	BasisSecondary ValuationBasis = "secondary"
	BasisImplied   ValuationBasis = "implied"
	BasisRumor     ValuationBasis = "rumor"
	BasisEstimate  ValuationBasis = "estimate"
)

// ConfidenceLevel is the ordered confidence enumeration (low < medium < high).
// Conflict is a company-level marker, never attached to an individual claim.
type ConfidenceLevel string

const (
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceConflict ConfidenceLevel = "conflict"
)

// Score maps a confidence label to its numeric value (low=1, medium=2, high=3)
func (c ConfidenceLevel) Score() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// ConfidenceFromScore reverse-maps a mean score to a label
func ConfidenceFromScore(mean float64) ConfidenceLevel {
	switch {
	case mean >= 2.5:
		return ConfidenceHigh
	case mean >= 1.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Downgrade lowers the confidence by exactly one level. Low stays low.
func (c ConfidenceLevel) Downgrade() ConfidenceLevel {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	case ConfidenceMedium:
		return ConfidenceLow
	default:
		return ConfidenceLow
	}
}
