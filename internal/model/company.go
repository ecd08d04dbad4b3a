package model

import "time"

// Company is one candidate under research. A company holds the latest snapshot
// and the latest claim set by reference; no cross-run history is retained.
type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Stage       string   `json:"stage,omitempty"`

	// Discovery/ranking fields
	FitScore      int            `json:"fit_score"`
	FitReasons    []string       `json:"fit_reasons,omitempty"`
	StageEstimate *StageEstimate `json:"stage_estimate,omitempty"`
	NextAction    string         `json:"next_action,omitempty"`

	// Validation fields, owned by the latest validation run
	Claims           []Claim          `json:"claims,omitempty"`
	FundingSnapshot  *FundingSnapshot `json:"funding_snapshot,omitempty"`
	ValidationStatus ValidationStatus `json:"validation_status"`
	ThesisFitNotes   string           `json:"thesis_fit_notes,omitempty"`
}

// StageEstimate is a funding-stage guess with an explanation of its basis
type StageEstimate struct {
	Stage      string          `json:"stage"`
	Confidence ConfidenceLevel `json:"confidence"`
	Basis      string          `json:"basis,omitempty"`
}

// ValidationStatus tracks whether a company's funding has been validated
type ValidationStatus string

const (
	ValidationPending   ValidationStatus = "pending"
	ValidationValidated ValidationStatus = "validated"
	ValidationFailed    ValidationStatus = "failed"
)

// ShortlistStatus is the researcher's verdict on a shortlisted company
type ShortlistStatus string

const (
	ShortlistPursue       ShortlistStatus = "pursue"
	ShortlistWatch        ShortlistStatus = "watch"
	ShortlistDeprioritize ShortlistStatus = "deprioritize"
)

// ShortlistEntry records a company added to a sprint's shortlist
type ShortlistEntry struct {
	CompanyID string          `json:"company_id"`
	Status    ShortlistStatus `json:"status"`
	Rationale string          `json:"rationale,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// ThesisSprint is one research sprint: a thesis plus its candidate companies
type ThesisSprint struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	KeywordsInclude []string         `json:"keywords_include,omitempty"`
	KeywordsExclude []string         `json:"keywords_exclude,omitempty"`
	StageFocus      string           `json:"stage_focus,omitempty"`
	Geography       string           `json:"geography,omitempty"`
	LastRaiseFilter string           `json:"last_raise_filter,omitempty"`
	Status          string           `json:"status"`
	CompanyIDs      []string         `json:"company_ids,omitempty"`
	Shortlist       []ShortlistEntry `json:"shortlist,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
