package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/application/services/generation"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/repositories/csv"
)

func writeTestSnapshot(t *testing.T) string {
	t.Helper()
	config := generation.Config{
		Seed:      42,
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		SalesRows: 5000,
	}
	g, err := generation.NewGenerator(config, zap.NewNop())
	require.NoError(t, err)
	snapshot, err := g.Generate(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = csv.NewWriter(dir, "", zap.NewNop()).Write(context.Background(), snapshot)
	require.NoError(t, err)
	return dir
}

func resultFor(t *testing.T, results []entities.FileQuality, table entities.Table) entities.FileQuality {
	t.Helper()
	for _, r := range results {
		if r.Table == table {
			return r
		}
	}
	t.Fatalf("no result for %s", table)
	return entities.FileQuality{}
}

// rewriteCell replaces one cell of a written file
func rewriteCell(t *testing.T, dir string, table entities.Table, row int, col string, value string) {
	t.Helper()
	loader := csv.NewLoader(dir)
	raw, err := loader.ReadTable(table)
	require.NoError(t, err)

	idx := -1
	for i, c := range raw.Header {
		if c == col {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	raw.Rows[row][idx] = value

	var b strings.Builder
	b.WriteString(strings.Join(raw.Header, ",") + "\n")
	for _, r := range raw.Rows {
		b.WriteString(strings.Join(r, ",") + "\n")
	}
	require.NoError(t, os.WriteFile(loader.Path(table), []byte(b.String()), 0644))
}

func TestQualityChecker_GeneratedSnapshotPasses(t *testing.T) {
	dir := writeTestSnapshot(t)

	results := NewQualityChecker().Check(csv.NewLoader(dir))
	require.Len(t, results, len(entities.Tables))

	for _, r := range results {
		assert.Equal(t, entities.StatusPass, r.Status, "%s: %v", r.Table, r.Issues)
		assert.Empty(t, r.Issues)
	}

	sales := resultFor(t, results, entities.FactSales)
	assert.Equal(t, 5000, sales.Records)
	assert.Equal(t, 13, sales.Columns)
	assert.Equal(t, 730, resultFor(t, results, entities.DimDate).Records)
}

func TestQualityChecker_NegativeQuantity(t *testing.T) {
	dir := writeTestSnapshot(t)
	rewriteCell(t, dir, entities.FactSales, 10, "Quantity", "-5")

	results := NewQualityChecker().Check(csv.NewLoader(dir))
	sales := resultFor(t, results, entities.FactSales)

	assert.Equal(t, entities.StatusWarn, sales.Status)
	assert.Contains(t, sales.Issues, "Negative quantities found")
	assert.Equal(t, entities.StatusPass, resultFor(t, results, entities.DimDate).Status)
}

func TestQualityChecker_Findings(t *testing.T) {
	tests := []struct {
		name  string
		table entities.Table
		row   int
		col   string
		value string
		issue string
	}{
		{"price below cost", entities.DimProduct, 0, "UnitPrice", "0.01", "1 products have UnitPrice < UnitCost"},
		{"duplicate product code", entities.DimProduct, 1, "ProductCode", "BEESAB001", "Duplicate ProductCode values found"},
		{"invalid payment terms", entities.DimCustomer, 3, "PaymentTerms", "60", "Invalid payment terms found"},
		{"unknown manager", entities.DimEmployee, 2, "ReportsTo", "9999", "1 employees report to non-existent managers"},
		{"discount above gross", entities.FactSales, 0, "DiscountAmount", "999999.00", "1 records have discount > gross sales"},
		{"unknown product", entities.FactSales, 0, "ProductKey", "9999", "1 records reference unknown ProductKey"},
		{"missing department", entities.FactBudget, 0, "Department", "", "Missing department values found"},
		{"negative discount percent", entities.FactSales, 0, "DiscountPercent", "-0.5", "1 records have DiscountPercent outside [0, 1)"},
		{"full discount percent", entities.FactSales, 1, "DiscountPercent", "1.00", "1 records have DiscountPercent outside [0, 1)"},
		{"stock above max", entities.FactInventory, 0, "StockOnHand", "99999", "1 items above maximum stock level"},
		{"negative reorder level", entities.FactInventory, 0, "ReorderLevel", "-50", "Negative reorder levels found"},
		{"negative max stock level", entities.FactInventory, 0, "MaxStockLevel", "-1", "Negative maximum stock levels found"},
		{"duplicate date key", entities.DimDate, 1, "DateKey", "20220101", "Duplicate DateKey values found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTestSnapshot(t)
			rewriteCell(t, dir, tt.table, tt.row, tt.col, tt.value)

			result := resultFor(t, NewQualityChecker().Check(csv.NewLoader(dir)), tt.table)
			assert.Equal(t, entities.StatusWarn, result.Status)
			assert.Contains(t, result.Issues, tt.issue)
		})
	}
}

func TestQualityChecker_MissingFileFails(t *testing.T) {
	dir := writeTestSnapshot(t)
	require.NoError(t, os.Remove(filepath.Join(dir, entities.FactBudget.FileName())))

	results := NewQualityChecker().Check(csv.NewLoader(dir))
	budget := resultFor(t, results, entities.FactBudget)

	assert.Equal(t, entities.StatusFail, budget.Status)
	assert.Equal(t, []string{"File not found"}, budget.Issues)
	assert.Zero(t, budget.Records)
}

func TestQualityChecker_UnparsableFileWarns(t *testing.T) {
	dir := writeTestSnapshot(t)
	path := filepath.Join(dir, entities.FactBudget.FileName())
	require.NoError(t, os.WriteFile(path, []byte("BudgetKey,Department\n1,Sa\"les\n"), 0644))

	results := NewQualityChecker().Check(csv.NewLoader(dir))
	budget := resultFor(t, results, entities.FactBudget)

	assert.Equal(t, entities.StatusWarn, budget.Status)
	require.Len(t, budget.Issues, 1)
	assert.Contains(t, budget.Issues[0], "File could not be read")
}

func TestQualityChecker_InactiveReference(t *testing.T) {
	dir := writeTestSnapshot(t)

	sales, err := csv.NewLoader(dir).ReadTable(entities.FactSales)
	require.NoError(t, err)
	customer := sales.Value(0, "CustomerKey")

	customers, err := csv.NewLoader(dir).ReadTable(entities.DimCustomer)
	require.NoError(t, err)
	for i := range customers.Rows {
		if customers.Value(i, "CustomerKey") == customer {
			rewriteCell(t, dir, entities.DimCustomer, i, "IsActive", "False")
		}
	}

	result := resultFor(t, NewQualityChecker().Check(csv.NewLoader(dir)), entities.FactSales)
	assert.Equal(t, entities.StatusWarn, result.Status)
	require.NotEmpty(t, result.Issues)
	assert.Contains(t, result.Issues[len(result.Issues)-1], "reference inactive CustomerKey")
}
