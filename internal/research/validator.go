package research

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/provider"
	"github.com/vkotov/fundlens/internal/reconcile"
	"github.com/vkotov/fundlens/internal/store"
)

// Validator runs funding validation for one company at a time: fetch claims
// from the data provider, reconcile them, and replace the company's snapshot.
type Validator struct {
	provider   provider.DataProvider
	reconciler *reconcile.Reconciler
	store      *store.Store
	timeout    time.Duration
	verbose    bool
}

// NewValidator creates a validation orchestrator
func NewValidator(dataProvider provider.DataProvider, reconciler *reconcile.Reconciler, st *store.Store, timeout time.Duration, verbose bool) *Validator {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Validator{
		provider:   dataProvider,
		reconciler: reconciler,
		store:      st,
		timeout:    timeout,
		verbose:    verbose,
	}
}

// ValidateCompany validates one company's funding and stores the result.
// Provider failures degrade to an empty claim set instead of aborting the
// run; reconciliation errors are surfaced.
func (v *Validator) ValidateCompany(ctx context.Context, companyID string) (*model.FundingSnapshot, error) {
	unlock := v.store.LockCompany(companyID)
	defer unlock()

	company, err := v.store.GetCompany(companyID)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	claims, err := v.provider.FetchFundingClaims(fetchCtx, company.ID, company.Name, company.Website)
	if err != nil {
		if v.verbose {
			log.Printf("provider failed for %s: %v (treating as no evidence)", company.Name, err)
		}
		claims = nil
	}

	snapshot, err := v.reconciler.Reconcile(company.Name, claims)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", company.Name, err)
	}

	status := model.ValidationValidated
	if snapshot == nil {
		status = model.ValidationFailed
	}
	if err := v.store.SetValidation(company.ID, claims, snapshot, status); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// BatchResult is the outcome of validating one company in a batch run
type BatchResult struct {
	CompanyID   string
	CompanyName string
	Snapshot    *model.FundingSnapshot
	Err         error
}
