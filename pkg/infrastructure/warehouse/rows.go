package warehouse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// RunLogTable records one row per load run
const RunLogTable = "load_run_log"

// LoadOrder lists the tables so that referenced dimensions load first
func LoadOrder() []entities.Table {
	return entities.Tables
}

// DeleteOrder is LoadOrder reversed, facts before the dimensions they reference
func DeleteOrder() []entities.Table {
	order := LoadOrder()
	out := make([]entities.Table, len(order))
	for i, t := range order {
		out[len(order)-1-i] = t
	}
	return out
}

// Columns returns the warehouse column names of a table in file order
func Columns(table entities.Table) []string {
	cols := table.Columns()
	for i, c := range cols {
		cols[i] = SnakeCase(c)
	}
	return cols
}

// SnakeCase converts a CSV header such as KPIName or EmployeeID to kpi_name or employee_id
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Rows returns the values of every row of a table in column order.
// Keys are plain int64 and a missing manager is nil, so any driver can bind them.
func Rows(s *entities.Snapshot, table entities.Table) ([][]any, error) {
	var rows [][]any
	switch table {
	case entities.DimDate:
		for _, d := range s.Dates {
			rows = append(rows, []any{
				int64(d.Key), d.Date, d.Year, d.Quarter, d.Month, d.MonthName, d.Day, d.DayName,
				d.WeekOfYear, d.DayOfYear, d.IsWeekend, d.FiscalYear, d.FiscalQuarter,
			})
		}
	case entities.DimProduct:
		for _, p := range s.Products {
			rows = append(rows, []any{
				int64(p.Key), p.Code, p.Name, p.Category, p.Vendor,
				p.UnitCost, p.UnitPrice, p.PackSize, p.LaunchDate, p.IsActive,
			})
		}
	case entities.DimCustomer:
		for _, c := range s.Customers {
			rows = append(rows, []any{
				int64(c.Key), c.Code, c.Name, c.Region, c.City, c.Channel,
				c.CustomerType, c.CreditLimit, c.PaymentTerms, c.IsActive,
			})
		}
	case entities.DimEmployee:
		for _, e := range s.Employees {
			var reportsTo any
			if e.ReportsTo != nil {
				reportsTo = int64(*e.ReportsTo)
			}
			rows = append(rows, []any{
				int64(e.Key), e.EmployeeID, e.FirstName, e.LastName, e.Department,
				e.Position, e.HireDate, e.Salary, reportsTo, e.IsActive,
			})
		}
	case entities.FactSales:
		for _, f := range s.Sales {
			rows = append(rows, []any{
				int64(f.Key), int64(f.DateKey), int64(f.ProductKey), int64(f.CustomerKey), int64(f.EmployeeKey),
				f.InvoiceNumber, f.Quantity, f.DiscountPercent, f.GrossSales, f.DiscountAmount,
				f.NetSales, f.COGS, f.GrossProfit,
			})
		}
	case entities.FactBudget:
		for _, b := range s.Budgets {
			rows = append(rows, []any{
				int64(b.Key), int64(b.DateKey), b.Department, b.BudgetAmount, b.ActualAmount, b.ForecastAmount,
			})
		}
	case entities.FactInventory:
		for _, p := range s.Inventory {
			rows = append(rows, []any{
				int64(p.Key), int64(p.ProductKey), p.WarehouseLocation, p.StockOnHand,
				p.ReorderLevel, p.MaxStockLevel, p.LastStockDate,
			})
		}
	case entities.DimKPITargets:
		for _, k := range s.KPITargets {
			rows = append(rows, []any{k.Name, k.TargetValue, string(k.Period), k.Department})
		}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return rows, nil
}
