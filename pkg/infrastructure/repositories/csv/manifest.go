package csv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// ManifestFileName is written next to the snapshot files
const ManifestFileName = "manifest.yaml"

// Manifest records how a snapshot directory was produced
type Manifest struct {
	RunID       uuid.UUID      `yaml:"run_id"`
	Seed        int64          `yaml:"seed"`
	StartDate   string         `yaml:"start_date"`
	EndDate     string         `yaml:"end_date"`
	SalesRows   int            `yaml:"sales_rows"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Files       []ManifestFile `yaml:"files"`
}

// ManifestFile describes one file of the snapshot
type ManifestFile struct {
	Table   entities.Table `yaml:"table"`
	File    string         `yaml:"file"`
	Rows    int            `yaml:"rows"`
	Columns []string       `yaml:"columns"`
}

// NewManifest builds the manifest of a finished write
func NewManifest(runID uuid.UUID, seed int64, start, end time.Time, salesRows int, report *WriteReport) *Manifest {
	m := &Manifest{
		RunID:       runID,
		Seed:        seed,
		StartDate:   start.Format(entities.DateLayout),
		EndDate:     end.Format(entities.DateLayout),
		SalesRows:   salesRows,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, f := range report.Files {
		m.Files = append(m.Files, ManifestFile{
			Table:   f.Table,
			File:    filepath.Base(f.Path),
			Rows:    f.Rows,
			Columns: f.Table.Columns(),
		})
	}
	return m
}

// Rows returns the recorded row count of a table
func (m *Manifest) Rows(table entities.Table) (int, bool) {
	for _, f := range m.Files {
		if f.Table == table {
			return f.Rows, true
		}
	}
	return 0, false
}

// WriteManifest writes m into dir
func WriteManifest(dir string, m *Manifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return path, nil
}

// ReadManifest reads the manifest of a snapshot directory
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
