package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalesTotals are the headline figures of the executive dashboard
type SalesTotals struct {
	NetSales     decimal.Decimal `json:"net_sales"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	Transactions int64           `json:"transactions"`
	UnitsSold    int64           `json:"units_sold"`
}

// MarginPercent is gross profit over net sales, zero when nothing was sold
func (t SalesTotals) MarginPercent() decimal.Decimal {
	return marginPercent(t.GrossProfit, t.NetSales)
}

// SalesBreakdown is one group of a sales-by-attribute aggregation
type SalesBreakdown struct {
	Name         string          `json:"name"`
	NetSales     decimal.Decimal `json:"net_sales"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	Transactions int64           `json:"transactions"`
}

// MarginPercent is gross profit over net sales for the group
func (b SalesBreakdown) MarginPercent() decimal.Decimal {
	return marginPercent(b.GrossProfit, b.NetSales)
}

// MonthlySales is revenue and profit for one calendar month
type MonthlySales struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	NetSales     decimal.Decimal `json:"net_sales"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	Transactions int64           `json:"transactions"`
}

// Label formats the month as YYYY-MM
func (m MonthlySales) Label() string {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// BudgetVariance compares budgeted and actual spend for one department
type BudgetVariance struct {
	Department string          `json:"department"`
	Budget     decimal.Decimal `json:"budget"`
	Actual     decimal.Decimal `json:"actual"`
	Forecast   decimal.Decimal `json:"forecast"`
}

// Variance is actual minus budget
func (b BudgetVariance) Variance() decimal.Decimal {
	return b.Actual.Sub(b.Budget)
}

// VariancePercent is the variance relative to the budget
func (b BudgetVariance) VariancePercent() decimal.Decimal {
	return marginPercent(b.Variance(), b.Budget)
}

// KPITarget is one named target as stored in the warehouse
type KPITarget struct {
	Name        string          `json:"kpi_name"`
	TargetValue decimal.Decimal `json:"target_value"`
	Period      string          `json:"period"`
	Department  string          `json:"department"`
}

// KPISummary gathers the dashboard aggregations over a loaded warehouse
type KPISummary struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Totals         SalesTotals      `json:"totals"`
	ByRegion       []SalesBreakdown `json:"by_region"`
	ByCategory     []SalesBreakdown `json:"by_category"`
	ByVendor       []SalesBreakdown `json:"by_vendor"`
	ByChannel      []SalesBreakdown `json:"by_channel"`
	Monthly        []MonthlySales   `json:"monthly"`
	BudgetVariance []BudgetVariance `json:"budget_variance"`
	LowStockItems  int64            `json:"low_stock_items"`
	Targets        []KPITarget      `json:"targets"`
}

func marginPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
