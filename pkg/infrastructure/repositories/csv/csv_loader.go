package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

// Loader reads snapshot files back from a directory
type Loader struct {
	dir string
}

// NewLoader creates a new CSV loader for dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the directory the loader reads from
func (l *Loader) Dir() string {
	return l.dir
}

// Path returns the file path of a table
func (l *Loader) Path(table entities.Table) string {
	return filepath.Join(l.dir, table.FileName())
}

// ReadTable reads a table file as text without interpreting it.
// Rows may be ragged; callers that need typed values use LoadSnapshot.
func (l *Loader) ReadTable(table entities.Table) (*entities.RawTable, error) {
	path := l.Path(table)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s file %s: %w", table, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", table, err)
	}

	if len(records) == 0 {
		return entities.NewRawTable(table, nil, nil), nil
	}
	return entities.NewRawTable(table, records[0], records[1:]), nil
}

// LoadSnapshot reads and decodes every table of a snapshot directory
func (l *Loader) LoadSnapshot() (*entities.Snapshot, error) {
	snapshot := &entities.Snapshot{}
	for _, table := range entities.Tables {
		raw, err := l.ReadTable(table)
		if err != nil {
			return nil, err
		}
		if err := decodeTable(snapshot, raw); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}

func decodeTable(snapshot *entities.Snapshot, raw *entities.RawTable) error {
	expectedHeader := raw.Table.Columns()
	if !validateHeader(raw.Header, expectedHeader) {
		return fmt.Errorf("%w: %s expected %v, got %v", apperrors.ErrHeaderMismatch, raw.Table, expectedHeader, raw.Header)
	}

	for i, record := range raw.Rows {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("%s CSV row %d: expected %d columns, got %d", raw.Table, i+2, len(expectedHeader), len(record))
		}
		if err := decodeRow(snapshot, raw.Table, record); err != nil {
			return fmt.Errorf("%s CSV row %d: %w", raw.Table, i+2, err)
		}
	}
	return nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.TrimSpace(strings.TrimPrefix(actual[i], "\ufeff")) != col {
			return false
		}
	}

	return true
}
