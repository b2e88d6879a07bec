package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// fileCheck accumulates the findings for one raw table
type fileCheck struct {
	raw    *entities.RawTable
	result *entities.FileQuality
}

func newFileCheck(raw *entities.RawTable) *fileCheck {
	return &fileCheck{
		raw: raw,
		result: &entities.FileQuality{
			Table:   raw.Table,
			Records: len(raw.Rows),
			Columns: len(raw.Header),
			Status:  entities.StatusPass,
		},
	}
}

func (f *fileCheck) issuef(format string, args ...any) {
	f.result.AddIssue(fmt.Sprintf(format, args...))
}

func (f *fileCheck) value(i int, col string) string {
	return strings.TrimSpace(f.raw.Value(i, col))
}

// count returns the number of rows matching pred
func (f *fileCheck) count(pred func(i int) bool) int {
	n := 0
	for i := range f.raw.Rows {
		if pred(i) {
			n++
		}
	}
	return n
}

func (f *fileCheck) intAt(i int, col string) (int, bool) {
	v, err := strconv.Atoi(f.value(i, col))
	return v, err == nil
}

func (f *fileCheck) decimalAt(i int, col string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(f.value(i, col))
	return v, err == nil
}

func (f *fileCheck) isNegative(i int, col string) bool {
	v, ok := f.decimalAt(i, col)
	return ok && v.IsNegative()
}

func (f *fileCheck) rowHasEmpty(i int) bool {
	row := f.raw.Rows[i]
	if len(row) < len(f.raw.Header) {
		return true
	}
	for _, v := range row {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// requireColumns reports header columns that are missing and ragged rows
func (f *fileCheck) requireColumns() {
	for _, col := range f.raw.Table.Columns() {
		if !f.raw.HasColumn(col) {
			f.issuef("Missing column %s", col)
		}
	}
	if ragged := f.count(func(i int) bool { return len(f.raw.Rows[i]) != len(f.raw.Header) }); ragged > 0 {
		f.issuef("%d records have the wrong number of fields", ragged)
	}
}

func (f *fileCheck) unique(col string) {
	if !f.raw.HasColumn(col) {
		return
	}
	seen := make(map[string]bool, len(f.raw.Rows))
	for i := range f.raw.Rows {
		v := f.value(i, col)
		if seen[v] {
			f.issuef("Duplicate %s values found", col)
			return
		}
		seen[v] = true
	}
}

func (f *fileCheck) notEmpty(cols ...string) {
	for _, col := range cols {
		if !f.raw.HasColumn(col) {
			continue
		}
		if f.count(func(i int) bool { return f.value(i, col) == "" }) > 0 {
			f.issuef("Null values found in %s", col)
		}
	}
}

// numeric reports columns holding values that do not parse as numbers
func (f *fileCheck) numeric(cols ...string) {
	for _, col := range cols {
		if !f.raw.HasColumn(col) {
			continue
		}
		if n := f.count(func(i int) bool { _, ok := f.decimalAt(i, col); return !ok }); n > 0 {
			f.issuef("%d records have non-numeric %s", n, col)
		}
	}
}

// identityHolds checks result == left - right within IdentityTolerance.
// Rows with unparseable amounts are left to numeric.
func (f *fileCheck) identityHolds(i int, result, left, right string) bool {
	r, ok1 := f.decimalAt(i, result)
	l, ok2 := f.decimalAt(i, left)
	s, ok3 := f.decimalAt(i, right)
	if !ok1 || !ok2 || !ok3 {
		return true
	}
	return r.Sub(l.Sub(s)).Abs().LessThanOrEqual(IdentityTolerance)
}

// references checks a foreign key column against a dimension table.
// With activeCol set, references to inactive rows are reported too.
// A missing dimension is skipped; its own check already fails.
func (f *fileCheck) references(col string, dim *entities.RawTable, keyCol, activeCol string) {
	if dim == nil || !f.raw.HasColumn(col) || !dim.HasColumn(keyCol) {
		return
	}

	active := make(map[string]bool, len(dim.Rows))
	for i := range dim.Rows {
		key := strings.TrimSpace(dim.Value(i, keyCol))
		isActive := true
		if activeCol != "" {
			isActive, _ = entities.ParseBool(strings.TrimSpace(dim.Value(i, activeCol)))
		}
		active[key] = isActive
	}

	unknown, inactive := 0, 0
	for i := range f.raw.Rows {
		isActive, exists := active[f.value(i, col)]
		switch {
		case !exists:
			unknown++
		case !isActive:
			inactive++
		}
	}
	if unknown > 0 {
		f.issuef("%d records reference unknown %s", unknown, col)
	}
	if inactive > 0 {
		f.issuef("%d records reference inactive %s", inactive, col)
	}
}
