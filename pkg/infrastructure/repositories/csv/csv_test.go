package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/application/services/generation"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

func testSnapshot(t *testing.T) (*entities.Snapshot, generation.Config) {
	t.Helper()
	config := generation.Config{
		Seed:      42,
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		SalesRows: 200,
	}
	g, err := generation.NewGenerator(config, zaptest.NewLogger(t))
	require.NoError(t, err)
	snapshot, err := g.Generate(context.Background())
	require.NoError(t, err)
	return snapshot, config
}

func writeSnapshot(t *testing.T, dir string) *WriteReport {
	t.Helper()
	snapshot, _ := testSnapshot(t)
	report, err := NewWriter(dir, "", zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	require.NoError(t, err)
	return report
}

func TestWriter_WritesEveryTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	snapshot, _ := testSnapshot(t)

	report, err := NewWriter(dir, "", zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	require.NoError(t, err)

	assert.Equal(t, dir, report.Dir)
	assert.False(t, report.UsedFallback)
	require.Len(t, report.Files, len(entities.Tables))
	for i, f := range report.Files {
		assert.Equal(t, entities.Tables[i], f.Table)
		assert.Equal(t, snapshot.RowCount(f.Table), f.Rows)
		assert.FileExists(t, f.Path)
	}
	assert.Equal(t, 90, report.Files[0].Rows)
}

func TestWriter_SameSeedIsByteIdentical(t *testing.T) {
	first := writeSnapshot(t, t.TempDir())
	second := writeSnapshot(t, t.TempDir())

	for i := range first.Files {
		a, err := os.ReadFile(first.Files[i].Path)
		require.NoError(t, err)
		b, err := os.ReadFile(second.Files[i].Path)
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s differs between runs", first.Files[i].Table)
	}
}

func TestWriter_Formats(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir)

	raw, err := NewLoader(dir).ReadTable(entities.DimDate)
	require.NoError(t, err)
	assert.Equal(t, entities.DimDate.Columns(), raw.Header)
	assert.Equal(t, "20230101", raw.Value(0, "DateKey"))
	assert.Equal(t, "2023-01-01", raw.Value(0, "Date"))
	assert.Equal(t, "Sunday", raw.Value(0, "DayName"))
	assert.Equal(t, "True", raw.Value(0, "IsWeekend"))
	assert.Equal(t, "52", raw.Value(0, "WeekOfYear"))
	assert.Equal(t, "4", raw.Value(0, "FiscalQuarter"))

	employees, err := NewLoader(dir).ReadTable(entities.DimEmployee)
	require.NoError(t, err)
	assert.Equal(t, "", employees.Value(0, "ReportsTo"))
	assert.Equal(t, "1", employees.Value(1, "ReportsTo"))

	sales, err := NewLoader(dir).ReadTable(entities.FactSales)
	require.NoError(t, err)
	assert.Regexp(t, `^0\.\d{4}$`, sales.Value(0, "DiscountPercent"))
	assert.Regexp(t, `^\d+\.\d{2}$`, sales.Value(0, "GrossSales"))

	inventory, err := NewLoader(dir).ReadTable(entities.FactInventory)
	require.NoError(t, err)
	assert.Regexp(t, `^2023-03-\d{2} \d{2}:\d{2}:\d{2}$`, inventory.Value(0, "LastStockDate"))
}

func TestWriter_FallsBackOnPermissionError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	base := t.TempDir()
	locked := filepath.Join(base, "locked")
	require.NoError(t, os.Mkdir(locked, 0500))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	fallback := filepath.Join(base, "fallback")
	snapshot, _ := testSnapshot(t)

	report, err := NewWriter(filepath.Join(locked, "out"), fallback, zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	require.NoError(t, err)
	assert.True(t, report.UsedFallback)
	assert.Equal(t, fallback, report.Dir)
	assert.FileExists(t, filepath.Join(fallback, entities.FactSales.FileName()))

	_, err = NewWriter(filepath.Join(locked, "out"), "", zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	assert.Error(t, err)
}

func TestLoader_LoadSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snapshot, _ := testSnapshot(t)
	_, err := NewWriter(dir, "", zaptest.NewLogger(t)).Write(context.Background(), snapshot)
	require.NoError(t, err)

	loaded, err := NewLoader(dir).LoadSnapshot()
	require.NoError(t, err)

	for _, table := range entities.Tables {
		assert.Equal(t, snapshot.RowCount(table), loaded.RowCount(table), "%s", table)
	}
	assert.Equal(t, snapshot.Dates, loaded.Dates)

	for i := range snapshot.Sales {
		want, got := snapshot.Sales[i], loaded.Sales[i]
		assert.Equal(t, want.InvoiceNumber, got.InvoiceNumber)
		assert.True(t, want.NetSales.Equal(got.NetSales))
		assert.True(t, want.DiscountPercent.Equal(got.DiscountPercent))
	}
	for i := range snapshot.Employees {
		assert.Equal(t, snapshot.Employees[i].ReportsTo, loaded.Employees[i].ReportsTo)
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader(dir).ReadTable(entities.FactSales)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	writeSnapshot(t, dir)
	path := filepath.Join(dir, entities.FactBudget.FileName())
	require.NoError(t, os.WriteFile(path, []byte("BudgetKey,Dept\n1,Sales\n"), 0644))

	_, err = NewLoader(dir).LoadSnapshot()
	assert.ErrorIs(t, err, apperrors.ErrHeaderMismatch)

	require.NoError(t, os.WriteFile(path,
		[]byte("BudgetKey,DateKey,Department,BudgetAmount,ActualAmount,ForecastAmount\n1,20230101,Sales,abc,1,1\n"), 0644))
	_, err = NewLoader(dir).LoadSnapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fact_budget CSV row 2")
	assert.Contains(t, err.Error(), "BudgetAmount")
}

func TestManifest_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	report := writeSnapshot(t, dir)
	_, config := testSnapshot(t)

	runID := uuid.New()
	manifest := NewManifest(runID, config.Seed, config.StartDate, config.EndDate, config.SalesRows, report)
	_, err := WriteManifest(dir, manifest)
	require.NoError(t, err)

	loaded, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, runID, loaded.RunID)
	assert.Equal(t, "2023-01-01", loaded.StartDate)

	rows, ok := loaded.Rows(entities.FactSales)
	assert.True(t, ok)
	assert.Equal(t, 200, rows)
	assert.Equal(t, entities.FactSales.Columns(), loaded.Files[4].Columns)
}
