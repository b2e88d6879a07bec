package kpi

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/bigen/pkg/application/dto"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/infrastructure/testhelpers"
	pgwarehouse "github.com/vsinha/bigen/pkg/infrastructure/warehouse/postgres"
)

func loadWarehouse(t *testing.T) (*Reader, *entities.Snapshot) {
	t.Helper()
	db := testhelpers.GetPostgres(t)
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	w, err := pgwarehouse.Open(ctx, pgwarehouse.Config{
		Host:     db.Host,
		Port:     db.Port,
		User:     db.User,
		Password: db.Password,
		Database: db.Name,
	}, logger)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Migrate(ctx))
	snapshot := testhelpers.BuildSnapshot(t, 400)
	_, err = w.Load(ctx, uuid.New(), snapshot)
	require.NoError(t, err)

	reader, err := Open(db.PostgresURL(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	return reader, snapshot
}

func TestReader_Summary(t *testing.T) {
	reader, snapshot := loadWarehouse(t)
	ctx := context.Background()

	net, profit := decimal.Zero, decimal.Zero
	units := 0
	for _, s := range snapshot.Sales {
		net = net.Add(s.NetSales)
		profit = profit.Add(s.GrossProfit)
		units += s.Quantity
	}

	summary, err := reader.Summary(ctx)
	require.NoError(t, err)

	assert.True(t, net.Equal(summary.Totals.NetSales), "net sales %s != %s", net, summary.Totals.NetSales)
	assert.True(t, profit.Equal(summary.Totals.GrossProfit))
	assert.Equal(t, int64(len(snapshot.Sales)), summary.Totals.Transactions)
	assert.Equal(t, int64(units), summary.Totals.UnitsSold)

	for _, breakdown := range [][]dto.SalesBreakdown{
		summary.ByRegion, summary.ByCategory, summary.ByVendor, summary.ByChannel,
	} {
		sum := decimal.Zero
		var count int64
		for i, row := range breakdown {
			sum = sum.Add(row.NetSales)
			count += row.Transactions
			if i > 0 {
				assert.False(t, row.NetSales.GreaterThan(breakdown[i-1].NetSales), "breakdown must be ordered by net sales")
			}
		}
		assert.True(t, net.Equal(sum))
		assert.Equal(t, int64(len(snapshot.Sales)), count)
	}

	require.Len(t, summary.Monthly, 3, "Q1 2023")
	assert.Equal(t, "2023-01", summary.Monthly[0].Label())

	assert.Len(t, summary.BudgetVariance, 6)
	assert.Len(t, summary.Targets, len(snapshot.KPITargets))

	low := 0
	for _, inv := range snapshot.Inventory {
		if inv.StockOnHand < inv.ReorderLevel {
			low++
		}
	}
	assert.Equal(t, int64(low), summary.LowStockItems)
}

func TestReader_SalesByUnknownDimension(t *testing.T) {
	reader, _ := loadWarehouse(t)

	_, err := reader.SalesBy(context.Background(), Dimension("colour"))
	assert.Error(t, err)
}
