package entities

// RawTable is a CSV file read back as text, indexed by column name
type RawTable struct {
	Table  Table
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewRawTable builds a RawTable from a header and its data rows
func NewRawTable(table Table, header []string, rows [][]string) *RawTable {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	return &RawTable{Table: table, Header: header, Rows: rows, index: index}
}

// HasColumn reports whether the header contains col
func (t *RawTable) HasColumn(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Value returns the cell of row i in column col, or "" when either is missing
func (t *RawTable) Value(i int, col string) string {
	idx, ok := t.index[col]
	if !ok || i < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// Column returns every value of col in row order
func (t *RawTable) Column(col string) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Value(i, col)
	}
	return out
}
