package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vkotov/fundlens/internal/model"
)

func TestPersisterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	persister := NewFilePersister(dir)

	sprints := []model.ThesisSprint{{
		ID:        "sp1",
		Name:      "ai infra",
		Status:    "active",
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}
	companies := []model.Company{{ID: "c1", Name: "Acme", FitScore: 80}}

	if err := persister.Save(sprints, companies); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotSprints, gotCompanies, err := persister.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(gotSprints) != 1 || gotSprints[0].ID != "sp1" || gotSprints[0].Name != "ai infra" {
		t.Errorf("unexpected sprints: %+v", gotSprints)
	}
	if len(gotCompanies) != 1 || gotCompanies[0].FitScore != 80 {
		t.Errorf("unexpected companies: %+v", gotCompanies)
	}
}

func TestPersisterMissingFilesYieldEmpty(t *testing.T) {
	persister := NewFilePersister(t.TempDir())

	sprints, companies, err := persister.Load()
	if err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if len(sprints) != 0 || len(companies) != 0 {
		t.Errorf("expected empty state, got %d sprints, %d companies", len(sprints), len(companies))
	}
}

func TestPersisterRecoversFromCorruptPrimary(t *testing.T) {
	dir := t.TempDir()
	persister := NewFilePersister(dir)

	// First save establishes the primary; second rotates it to .bak
	if err := persister.Save([]model.ThesisSprint{{ID: "sp1"}}, nil); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := persister.Save([]model.ThesisSprint{{ID: "sp1"}, {ID: "sp2"}}, nil); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	path := filepath.Join(dir, sprintsFile)
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}

	sprints, _, err := persister.Load()
	if err != nil {
		t.Fatalf("Load with backup: %v", err)
	}
	if len(sprints) != 1 || sprints[0].ID != "sp1" {
		t.Errorf("expected backup state, got %+v", sprints)
	}
}

func TestPersisterCorruptWithoutBackupFails(t *testing.T) {
	dir := t.TempDir()
	persister := NewFilePersister(dir)

	if err := os.WriteFile(filepath.Join(dir, sprintsFile), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, _, err := persister.Load(); err == nil {
		t.Error("expected error for corrupt primary with no backup")
	}
}

func TestStoreSaveLoadThroughPersister(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(NewFilePersister(dir))
	if err := first.CreateSprint(model.ThesisSprint{ID: "sp1", Name: "fintech", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateSprint: %v", err)
	}
	if err := first.AddCompany("sp1", model.Company{ID: "c1", Name: "Acme"}); err != nil {
		t.Fatalf("AddCompany: %v", err)
	}
	if err := first.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := NewStore(NewFilePersister(dir))
	if err := second.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	sprint, err := second.GetSprint("sp1")
	if err != nil {
		t.Fatalf("GetSprint after reload: %v", err)
	}
	if sprint.Name != "fintech" {
		t.Errorf("sprint name = %q, want fintech", sprint.Name)
	}
	if _, err := second.GetCompany("c1"); err != nil {
		t.Errorf("company missing after reload: %v", err)
	}
}
