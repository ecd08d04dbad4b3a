package store

import (
	"sync"
	"testing"
	"time"

	"github.com/vkotov/fundlens/internal/model"
)

func newTestStore() *Store {
	return NewStore(nil)
}

func mustCreateSprint(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.CreateSprint(model.ThesisSprint{ID: id, Name: "sprint " + id, Status: "active", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateSprint: %v", err)
	}
}

func mustAddCompany(t *testing.T, s *Store, sprintID, companyID, name string) {
	t.Helper()
	if err := s.AddCompany(sprintID, model.Company{ID: companyID, Name: name, ValidationStatus: model.ValidationPending}); err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
}

func TestSprintLifecycle(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")

	if err := s.CreateSprint(model.ThesisSprint{ID: "sp1"}); err == nil {
		t.Error("duplicate sprint should fail")
	}

	sprint, err := s.GetSprint("sp1")
	if err != nil {
		t.Fatalf("GetSprint: %v", err)
	}
	if sprint.Name != "sprint sp1" {
		t.Errorf("unexpected sprint name %q", sprint.Name)
	}

	if err := s.DeleteSprint("sp1"); err != nil {
		t.Fatalf("DeleteSprint: %v", err)
	}
	if _, err := s.GetSprint("sp1"); err == nil {
		t.Error("deleted sprint should not be found")
	}
}

func TestListSprintsNewestFirst(t *testing.T) {
	s := newTestStore()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		id  string
		age time.Duration
	}{
		{"old", 48 * time.Hour},
		{"new", 0},
		{"mid", 24 * time.Hour},
	} {
		if err := s.CreateSprint(model.ThesisSprint{ID: tc.id, CreatedAt: base.Add(-tc.age)}); err != nil {
			t.Fatalf("CreateSprint %s: %v", tc.id, err)
		}
	}

	sprints := s.ListSprints()
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if sprints[i].ID != id {
			t.Errorf("sprints[%d].ID = %q, want %q", i, sprints[i].ID, id)
		}
	}
}

func TestDeleteSprintRemovesCompanies(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	if err := s.DeleteSprint("sp1"); err != nil {
		t.Fatalf("DeleteSprint: %v", err)
	}
	if _, err := s.GetCompany("c1"); err == nil {
		t.Error("company should be removed with its sprint")
	}
}

func TestAddCompanyToMissingSprint(t *testing.T) {
	s := newTestStore()

	err := s.AddCompany("nope", model.Company{ID: "c1", Name: "Acme"})
	if err == nil {
		t.Error("expected error for missing sprint")
	}
}

func TestListCompaniesPreservesOrder(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Zephyr")
	mustAddCompany(t, s, "sp1", "c2", "Acme")

	companies, err := s.ListCompanies("sp1")
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(companies) != 2 || companies[0].ID != "c1" || companies[1].ID != "c2" {
		t.Errorf("unexpected company order: %+v", companies)
	}
}

func TestFindCompanyByName(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	company, err := s.FindCompanyByName("Acme")
	if err != nil {
		t.Fatalf("FindCompanyByName: %v", err)
	}
	if company.ID != "c1" {
		t.Errorf("found %q, want c1", company.ID)
	}

	if _, err := s.FindCompanyByName("Nonexistent"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestSetValidationReplacesWholesale(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	first := []model.Claim{{ID: "cl1", CompanyID: "c1", Statement: "raised Series A"}}
	firstSnap := &model.FundingSnapshot{LastRoundType: "Series A", Amount: "$10M"}
	if err := s.SetValidation("c1", first, firstSnap, model.ValidationValidated); err != nil {
		t.Fatalf("SetValidation: %v", err)
	}

	second := []model.Claim{{ID: "cl2", CompanyID: "c1", Statement: "raised Series B"}}
	secondSnap := &model.FundingSnapshot{LastRoundType: "Series B"}
	if err := s.SetValidation("c1", second, secondSnap, model.ValidationValidated); err != nil {
		t.Fatalf("SetValidation (second): %v", err)
	}

	company, err := s.GetCompany("c1")
	if err != nil {
		t.Fatalf("GetCompany: %v", err)
	}
	if len(company.Claims) != 1 || company.Claims[0].ID != "cl2" {
		t.Errorf("claims not replaced wholesale: %+v", company.Claims)
	}
	if company.FundingSnapshot.Amount != "" {
		t.Error("snapshot amount should be gone after wholesale replacement")
	}
	if company.FundingSnapshot.LastRoundType != "Series B" {
		t.Errorf("snapshot round = %q, want Series B", company.FundingSnapshot.LastRoundType)
	}
}

func TestVerifyClaim(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	claims := []model.Claim{{ID: "cl1", CompanyID: "c1", Status: model.StatusUnverified}}
	if err := s.SetValidation("c1", claims, nil, model.ValidationValidated); err != nil {
		t.Fatalf("SetValidation: %v", err)
	}

	if err := s.VerifyClaim("c1", "cl1"); err != nil {
		t.Fatalf("VerifyClaim: %v", err)
	}
	company, _ := s.GetCompany("c1")
	if company.Claims[0].Status != model.StatusVerified {
		t.Errorf("claim status = %q, want verified", company.Claims[0].Status)
	}

	if err := s.VerifyClaim("c1", "missing"); err == nil {
		t.Error("expected error for unknown claim")
	}
}

func TestUpdateSprint(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	err := s.UpdateSprint("sp1", func(sprint *model.ThesisSprint) {
		sprint.Name = "renamed"
		sprint.StageFocus = "Series B+"
	})
	if err != nil {
		t.Fatalf("UpdateSprint: %v", err)
	}

	sprint, _ := s.GetSprint("sp1")
	if sprint.Name != "renamed" || sprint.StageFocus != "Series B+" {
		t.Errorf("edits not applied: %+v", sprint)
	}
	if len(sprint.CompanyIDs) != 1 {
		t.Errorf("membership must survive an edit: %+v", sprint.CompanyIDs)
	}

	if err := s.UpdateSprint("ghost", func(*model.ThesisSprint) {}); err == nil {
		t.Error("expected error for unknown sprint")
	}
}

func TestSetNotes(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	if err := s.SetNotes("c1", "strong wedge, churn unverified"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	company, _ := s.GetCompany("c1")
	if company.ThesisFitNotes != "strong wedge, churn unverified" {
		t.Errorf("notes = %q", company.ThesisFitNotes)
	}

	// Notes replace wholesale; empty clears
	if err := s.SetNotes("c1", ""); err != nil {
		t.Fatalf("SetNotes (clear): %v", err)
	}
	company, _ = s.GetCompany("c1")
	if company.ThesisFitNotes != "" {
		t.Errorf("notes should be cleared, got %q", company.ThesisFitNotes)
	}

	if err := s.SetNotes("ghost", "x"); err == nil {
		t.Error("expected error for unknown company")
	}
}

func TestShortlistAddUpdateRemove(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	if err := s.ShortlistAdd("sp1", "c1", model.ShortlistWatch, "needs a second look"); err != nil {
		t.Fatalf("ShortlistAdd: %v", err)
	}

	// Adding again updates in place
	if err := s.ShortlistAdd("sp1", "c1", model.ShortlistPursue, "strong fit"); err != nil {
		t.Fatalf("ShortlistAdd (update): %v", err)
	}
	sprint, _ := s.GetSprint("sp1")
	if len(sprint.Shortlist) != 1 {
		t.Fatalf("shortlist length = %d, want 1", len(sprint.Shortlist))
	}
	if sprint.Shortlist[0].Status != model.ShortlistPursue {
		t.Errorf("shortlist status = %q, want pursue", sprint.Shortlist[0].Status)
	}

	if err := s.ShortlistRemove("sp1", "c1"); err != nil {
		t.Fatalf("ShortlistRemove: %v", err)
	}
	sprint, _ = s.GetSprint("sp1")
	if len(sprint.Shortlist) != 0 {
		t.Errorf("shortlist should be empty, got %+v", sprint.Shortlist)
	}

	if err := s.ShortlistRemove("sp1", "c1"); err == nil {
		t.Error("removing absent entry should fail")
	}
	if err := s.ShortlistAdd("sp1", "ghost", model.ShortlistPursue, ""); err == nil {
		t.Error("shortlisting unknown company should fail")
	}
}

func TestLockCompanySerializes(t *testing.T) {
	s := newTestStore()

	var inCritical bool
	var violations int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.LockCompany("c1")
			defer unlock()

			mu.Lock()
			if inCritical {
				violations++
			}
			inCritical = true
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical = false
			mu.Unlock()
		}()
	}
	wg.Wait()

	if violations > 0 {
		t.Errorf("lock allowed %d concurrent critical sections", violations)
	}
}

func TestGetCompanyReturnsCopy(t *testing.T) {
	s := newTestStore()
	mustCreateSprint(t, s, "sp1")
	mustAddCompany(t, s, "sp1", "c1", "Acme")

	company, _ := s.GetCompany("c1")
	company.Name = "Mutated"

	fresh, _ := s.GetCompany("c1")
	if fresh.Name != "Acme" {
		t.Error("mutating a returned company must not affect the store")
	}
}
