package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/domain/repositories"
)

// TableRepository keeps snapshot tables as text in memory so they can be
// checked before anything is written to disk
type TableRepository struct {
	mu     sync.RWMutex
	tables map[entities.Table]*entities.RawTable
}

// NewTableRepository creates an empty in-memory table repository
func NewTableRepository() *TableRepository {
	return &TableRepository{
		tables: make(map[entities.Table]*entities.RawTable, len(entities.Tables)),
	}
}

// Verify interface compliance
var _ repositories.TableReader = (*TableRepository)(nil)

// SaveTable stores a table, replacing any previous version
func (r *TableRepository) SaveTable(raw *entities.RawTable) error {
	if raw == nil {
		return fmt.Errorf("table cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[raw.Table] = raw
	return nil
}

// ReadTable returns a copy of a stored table
func (r *TableRepository) ReadTable(table entities.Table) (*entities.RawTable, error) {
	r.mu.RLock()
	raw, exists := r.tables[table]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, table.FileName())
	}

	rows := make([][]string, len(raw.Rows))
	for i, row := range raw.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return entities.NewRawTable(raw.Table, append([]string(nil), raw.Header...), rows), nil
}
