package kpi

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vsinha/bigen/pkg/application/dto"
)

// Dimension names an attribute sales can be broken down by
type Dimension string

const (
	ByRegion   Dimension = "region"
	ByCategory Dimension = "category"
	ByVendor   Dimension = "vendor"
	ByChannel  Dimension = "channel"
)

var dimensionColumns = map[Dimension]string{
	ByRegion:   "c.region",
	ByCategory: "p.category",
	ByVendor:   "p.vendor",
	ByChannel:  "c.channel",
}

// Reader runs the dashboard aggregations against a loaded PostgreSQL warehouse
type Reader struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects gorm to the warehouse. dsn may be a URL or a key=value string.
func Open(dsn string, log *zap.Logger) (*Reader, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{db: db, logger: log}, nil
}

// NewReader wraps an existing gorm handle
func NewReader(db *gorm.DB, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{db: db, logger: log}
}

// Close releases the underlying connection pool
func (r *Reader) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Summary runs every aggregation of the dashboard
func (r *Reader) Summary(ctx context.Context) (*dto.KPISummary, error) {
	startTime := time.Now()
	summary := &dto.KPISummary{GeneratedAt: startTime.UTC()}

	totals, err := r.Totals(ctx)
	if err != nil {
		return nil, err
	}
	summary.Totals = *totals

	breakdowns := []struct {
		dim  Dimension
		dest *[]dto.SalesBreakdown
	}{
		{ByRegion, &summary.ByRegion},
		{ByCategory, &summary.ByCategory},
		{ByVendor, &summary.ByVendor},
		{ByChannel, &summary.ByChannel},
	}
	for _, b := range breakdowns {
		rows, err := r.SalesBy(ctx, b.dim)
		if err != nil {
			return nil, err
		}
		*b.dest = rows
	}

	if summary.Monthly, err = r.Monthly(ctx); err != nil {
		return nil, err
	}
	if summary.BudgetVariance, err = r.BudgetVariance(ctx); err != nil {
		return nil, err
	}
	if summary.LowStockItems, err = r.LowStockItems(ctx); err != nil {
		return nil, err
	}
	if summary.Targets, err = r.Targets(ctx); err != nil {
		return nil, err
	}

	r.logger.Info("kpi summary computed",
		zap.Int64("transactions", summary.Totals.Transactions),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// Totals sums net sales, gross profit and units over every sale
func (r *Reader) Totals(ctx context.Context) (*dto.SalesTotals, error) {
	var totals dto.SalesTotals
	err := r.db.WithContext(ctx).Model(&SalesFact{}).
		Select(`COALESCE(SUM(net_sales), 0) AS net_sales, ` +
			`COALESCE(SUM(gross_profit), 0) AS gross_profit, ` +
			`COUNT(*) AS transactions, ` +
			`COALESCE(SUM(quantity), 0) AS units_sold`).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales totals: %w", err)
	}
	return &totals, nil
}

// SalesBy groups sales by a product or customer attribute, largest first
func (r *Reader) SalesBy(ctx context.Context, dim Dimension) ([]dto.SalesBreakdown, error) {
	column, ok := dimensionColumns[dim]
	if !ok {
		return nil, fmt.Errorf("unknown sales dimension %q", dim)
	}

	var rows []dto.SalesBreakdown
	err := r.db.WithContext(ctx).Table("fact_sales f").
		Select(column+` AS name, `+
			`SUM(f.net_sales) AS net_sales, `+
			`SUM(f.gross_profit) AS gross_profit, `+
			`COUNT(*) AS transactions`).
		Joins("JOIN dim_product p ON p.product_key = f.product_key").
		Joins("JOIN dim_customer c ON c.customer_key = f.customer_key").
		Group(column).
		Order("net_sales DESC, name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales by %s: %w", dim, err)
	}
	return rows, nil
}

// Monthly returns revenue and profit per calendar month in date order
func (r *Reader) Monthly(ctx context.Context) ([]dto.MonthlySales, error) {
	var rows []dto.MonthlySales
	err := r.db.WithContext(ctx).Table("fact_sales f").
		Select(`d.year AS year, d.month AS month, ` +
			`SUM(f.net_sales) AS net_sales, ` +
			`SUM(f.gross_profit) AS gross_profit, ` +
			`COUNT(*) AS transactions`).
		Joins("JOIN dim_date d ON d.date_key = f.date_key").
		Group("d.year, d.month").
		Order("d.year, d.month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly sales: %w", err)
	}
	return rows, nil
}

// BudgetVariance totals budget, actual and forecast per department
func (r *Reader) BudgetVariance(ctx context.Context) ([]dto.BudgetVariance, error) {
	var rows []dto.BudgetVariance
	err := r.db.WithContext(ctx).Model(&BudgetFact{}).
		Select(`department, ` +
			`SUM(budget_amount) AS budget, ` +
			`SUM(actual_amount) AS actual, ` +
			`SUM(forecast_amount) AS forecast`).
		Group("department").
		Order("department").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget variance: %w", err)
	}
	return rows, nil
}

// LowStockItems counts inventory positions below their reorder level
func (r *Reader) LowStockItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&InventoryFact{}).
		Where("stock_on_hand < reorder_level").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock items: %w", err)
	}
	return count, nil
}

// Targets lists the KPI targets by department then name
func (r *Reader) Targets(ctx context.Context) ([]dto.KPITarget, error) {
	var rows []KPITarget
	if err := r.db.WithContext(ctx).Order("department, kpi_name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read kpi targets: %w", err)
	}

	targets := make([]dto.KPITarget, len(rows))
	for i, row := range rows {
		targets[i] = dto.KPITarget{
			Name:        row.KPIName,
			TargetValue: row.TargetValue,
			Period:      row.Period,
			Department:  row.Department,
		}
	}
	return targets, nil
}
