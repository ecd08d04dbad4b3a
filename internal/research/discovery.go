package research

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vkotov/fundlens/internal/llm"
	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/store"
)

// Discoverer generates candidate companies for a sprint via the LLM and
// records them in the store.
type Discoverer struct {
	llm   llm.Provider
	store *store.Store
}

// NewDiscoverer creates a discovery orchestrator
func NewDiscoverer(provider llm.Provider, st *store.Store) *Discoverer {
	return &Discoverer{llm: provider, store: st}
}

// Discover generates candidates for the sprint's thesis and adds them as
// pending companies. Returns the companies added.
func (d *Discoverer) Discover(ctx context.Context, sprintID string, targetCount int) ([]model.Company, error) {
	if d.llm == nil {
		return nil, fmt.Errorf("discovery requires an LLM provider; set llm.provider in config")
	}

	sprint, err := d.store.GetSprint(sprintID)
	if err != nil {
		return nil, err
	}

	candidates, err := d.llm.DiscoverCandidates(ctx, llm.DiscoveryRequest{
		Thesis:          sprint.Description,
		KeywordsInclude: sprint.KeywordsInclude,
		KeywordsExclude: sprint.KeywordsExclude,
		StageFocus:      sprint.StageFocus,
		Geography:       sprint.Geography,
		TargetCount:     targetCount,
	})
	if err != nil {
		return nil, fmt.Errorf("discover candidates: %w", err)
	}

	added := make([]model.Company, 0, len(candidates))
	for _, candidate := range candidates {
		company := companyFromCandidate(candidate)
		if err := d.store.AddCompany(sprintID, company); err != nil {
			return added, fmt.Errorf("add %s: %w", company.Name, err)
		}
		added = append(added, company)
	}
	return added, nil
}

func companyFromCandidate(candidate llm.Candidate) model.Company {
	company := model.Company{
		ID:               uuid.NewString(),
		Name:             candidate.Name,
		Description:      candidate.Description,
		Website:          candidate.Website,
		Location:         candidate.Location,
		Tags:             candidate.Tags,
		FitScore:         candidate.FitScore,
		FitReasons:       candidate.FitReasons,
		NextAction:       candidate.NextAction,
		ValidationStatus: model.ValidationPending,
	}
	if candidate.StageEstimate != "" {
		company.Stage = candidate.StageEstimate
		company.StageEstimate = &model.StageEstimate{
			Stage:      candidate.StageEstimate,
			Confidence: model.ConfidenceMedium,
			Basis:      candidate.StageBasis,
		}
	}
	return company
}
