package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkotov/fundlens/internal/model"
)

const (
	sprintsFile   = "sprints.json"
	companiesFile = "companies.json"
)

// FilePersister writes store state to JSON files in a data directory.
// Writes go through a temp file and rename; the previous file is kept as
// .bak and consulted when the primary is corrupt.
type FilePersister struct {
	dir string
}

// NewFilePersister creates a persister rooted at dir
func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{dir: dir}
}

// Save writes both collections atomically
func (p *FilePersister) Save(sprints []model.ThesisSprint, companies []model.Company) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := p.writeFile(sprintsFile, sprints); err != nil {
		return fmt.Errorf("save sprints: %w", err)
	}
	if err := p.writeFile(companiesFile, companies); err != nil {
		return fmt.Errorf("save companies: %w", err)
	}
	return nil
}

// Load reads both collections. Missing files yield empty slices; a corrupt
// primary file falls back to its .bak copy.
func (p *FilePersister) Load() ([]model.ThesisSprint, []model.Company, error) {
	var sprints []model.ThesisSprint
	if err := p.readFile(sprintsFile, &sprints); err != nil {
		return nil, nil, fmt.Errorf("load sprints: %w", err)
	}

	var companies []model.Company
	if err := p.readFile(companiesFile, &companies); err != nil {
		return nil, nil, fmt.Errorf("load companies: %w", err)
	}
	return sprints, companies, nil
}

func (p *FilePersister) writeFile(name string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	path := filepath.Join(p.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	// Keep the last good copy before replacing
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return fmt.Errorf("rotate backup: %w", err)
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

func (p *FilePersister) readFile(name string, value any) error {
	path := filepath.Join(p.dir, name)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if jsonErr := json.Unmarshal(raw, value); jsonErr != nil {
		backup, err := os.ReadFile(path + ".bak")
		if err != nil {
			return fmt.Errorf("parse (no usable backup): %w", jsonErr)
		}
		if err := json.Unmarshal(backup, value); err != nil {
			return fmt.Errorf("parse backup: %w", err)
		}
	}
	return nil
}
