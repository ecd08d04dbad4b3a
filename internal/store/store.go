package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vkotov/fundlens/internal/model"
)

// Store holds sprints and companies in memory, with optional file persistence.
// All state lives in the instance; callers construct and inject it explicitly.
type Store struct {
	mu        sync.RWMutex
	sprints   map[string]*model.ThesisSprint
	companies map[string]*model.Company

	// validation is serialized per company so concurrent batch workers never
	// interleave snapshot assignment for the same company
	lockMu       sync.Mutex
	companyLocks map[string]*sync.Mutex

	persister *FilePersister
}

// NewStore creates a store. persister may be nil for memory-only operation.
func NewStore(persister *FilePersister) *Store {
	return &Store{
		sprints:      make(map[string]*model.ThesisSprint),
		companies:    make(map[string]*model.Company),
		companyLocks: make(map[string]*sync.Mutex),
		persister:    persister,
	}
}

// Load replaces in-memory state with persisted state, if a persister is set
func (s *Store) Load() error {
	if s.persister == nil {
		return nil
	}

	sprints, companies, err := s.persister.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sprints = make(map[string]*model.ThesisSprint, len(sprints))
	for i := range sprints {
		s.sprints[sprints[i].ID] = &sprints[i]
	}
	s.companies = make(map[string]*model.Company, len(companies))
	for i := range companies {
		s.companies[companies[i].ID] = &companies[i]
	}
	return nil
}

// Save writes current state through the persister, if one is set
func (s *Store) Save() error {
	if s.persister == nil {
		return nil
	}

	s.mu.RLock()
	sprints := make([]model.ThesisSprint, 0, len(s.sprints))
	for _, sprint := range s.sprints {
		sprints = append(sprints, *sprint)
	}
	companies := make([]model.Company, 0, len(s.companies))
	for _, company := range s.companies {
		companies = append(companies, *company)
	}
	s.mu.RUnlock()

	sort.Slice(sprints, func(i, j int) bool { return sprints[i].ID < sprints[j].ID })
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })

	return s.persister.Save(sprints, companies)
}

// CreateSprint adds a new sprint
func (s *Store) CreateSprint(sprint model.ThesisSprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sprints[sprint.ID]; exists {
		return fmt.Errorf("sprint %s already exists", sprint.ID)
	}
	s.sprints[sprint.ID] = &sprint
	return nil
}

// GetSprint returns a sprint by ID
func (s *Store) GetSprint(id string) (*model.ThesisSprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sprint, exists := s.sprints[id]
	if !exists {
		return nil, fmt.Errorf("sprint %s not found", id)
	}
	copied := *sprint
	return &copied, nil
}

// ListSprints returns all sprints ordered by creation time, newest first
func (s *Store) ListSprints() []model.ThesisSprint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sprints := make([]model.ThesisSprint, 0, len(s.sprints))
	for _, sprint := range s.sprints {
		sprints = append(sprints, *sprint)
	}
	sort.Slice(sprints, func(i, j int) bool {
		if !sprints[i].CreatedAt.Equal(sprints[j].CreatedAt) {
			return sprints[i].CreatedAt.After(sprints[j].CreatedAt)
		}
		return sprints[i].ID < sprints[j].ID
	})
	return sprints
}

// UpdateSprint applies a mutation to a sprint under the store lock.
// The mutator sees the live sprint, so membership and shortlist edits
// belong to their dedicated methods, not here.
func (s *Store) UpdateSprint(id string, update func(*model.ThesisSprint)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sprint, exists := s.sprints[id]
	if !exists {
		return fmt.Errorf("sprint %s not found", id)
	}
	update(sprint)
	return nil
}

// DeleteSprint removes a sprint and its companies
func (s *Store) DeleteSprint(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sprint, exists := s.sprints[id]
	if !exists {
		return fmt.Errorf("sprint %s not found", id)
	}
	for _, companyID := range sprint.CompanyIDs {
		delete(s.companies, companyID)
	}
	delete(s.sprints, id)
	return nil
}

// AddCompany adds a company to a sprint
func (s *Store) AddCompany(sprintID string, company model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sprint, exists := s.sprints[sprintID]
	if !exists {
		return fmt.Errorf("sprint %s not found", sprintID)
	}
	if _, exists := s.companies[company.ID]; exists {
		return fmt.Errorf("company %s already exists", company.ID)
	}

	s.companies[company.ID] = &company
	sprint.CompanyIDs = append(sprint.CompanyIDs, company.ID)
	return nil
}

// GetCompany returns a company by ID
func (s *Store) GetCompany(id string) (*model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, exists := s.companies[id]
	if !exists {
		return nil, fmt.Errorf("company %s not found", id)
	}
	copied := *company
	return &copied, nil
}

// FindCompanyByName returns the first company whose name matches exactly
func (s *Store) FindCompanyByName(name string) (*model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *model.Company
	for _, company := range s.companies {
		if company.Name == name {
			if found == nil || company.ID < found.ID {
				found = company
			}
		}
	}
	if found == nil {
		return nil, fmt.Errorf("company %q not found", name)
	}
	copied := *found
	return &copied, nil
}

// ListCompanies returns a sprint's companies in sprint order
func (s *Store) ListCompanies(sprintID string) ([]model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sprint, exists := s.sprints[sprintID]
	if !exists {
		return nil, fmt.Errorf("sprint %s not found", sprintID)
	}

	companies := make([]model.Company, 0, len(sprint.CompanyIDs))
	for _, companyID := range sprint.CompanyIDs {
		if company, exists := s.companies[companyID]; exists {
			companies = append(companies, *company)
		}
	}
	return companies, nil
}

// LockCompany acquires the validation lock for a company and returns the
// unlock function. Locks are created on first use.
func (s *Store) LockCompany(companyID string) func() {
	s.lockMu.Lock()
	lock, exists := s.companyLocks[companyID]
	if !exists {
		lock = &sync.Mutex{}
		s.companyLocks[companyID] = lock
	}
	s.lockMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// SetValidation replaces a company's claims and snapshot wholesale and marks
// the validation status. Partial field merges are never performed.
func (s *Store) SetValidation(companyID string, claims []model.Claim, snapshot *model.FundingSnapshot, status model.ValidationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[companyID]
	if !exists {
		return fmt.Errorf("company %s not found", companyID)
	}
	company.Claims = claims
	company.FundingSnapshot = snapshot
	company.ValidationStatus = status
	return nil
}

// SetNotes replaces a company's thesis-fit notes
func (s *Store) SetNotes(companyID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[companyID]
	if !exists {
		return fmt.Errorf("company %s not found", companyID)
	}
	company.ThesisFitNotes = notes
	return nil
}

// VerifyClaim marks one claim on a company as verified
func (s *Store) VerifyClaim(companyID, claimID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[companyID]
	if !exists {
		return fmt.Errorf("company %s not found", companyID)
	}
	for i := range company.Claims {
		if company.Claims[i].ID == claimID {
			company.Claims[i].Status = model.StatusVerified
			return nil
		}
	}
	return fmt.Errorf("claim %s not found on company %s", claimID, companyID)
}

// ShortlistAdd adds or updates a company on a sprint's shortlist
func (s *Store) ShortlistAdd(sprintID, companyID string, status model.ShortlistStatus, rationale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sprint, exists := s.sprints[sprintID]
	if !exists {
		return fmt.Errorf("sprint %s not found", sprintID)
	}
	if _, exists := s.companies[companyID]; !exists {
		return fmt.Errorf("company %s not found", companyID)
	}

	for i := range sprint.Shortlist {
		if sprint.Shortlist[i].CompanyID == companyID {
			sprint.Shortlist[i].Status = status
			sprint.Shortlist[i].Rationale = rationale
			return nil
		}
	}
	sprint.Shortlist = append(sprint.Shortlist, model.ShortlistEntry{
		CompanyID: companyID,
		Status:    status,
		Rationale: rationale,
		AddedAt:   time.Now().UTC(),
	})
	return nil
}

// ShortlistRemove drops a company from a sprint's shortlist
func (s *Store) ShortlistRemove(sprintID, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sprint, exists := s.sprints[sprintID]
	if !exists {
		return fmt.Errorf("sprint %s not found", sprintID)
	}
	for i := range sprint.Shortlist {
		if sprint.Shortlist[i].CompanyID == companyID {
			sprint.Shortlist = append(sprint.Shortlist[:i], sprint.Shortlist[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("company %s is not on the shortlist", companyID)
}
