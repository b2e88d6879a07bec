package csv

import (
	"fmt"
	"strconv"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// encodeTable renders every row of a snapshot table in column order
func encodeTable(s *entities.Snapshot, table entities.Table) ([][]string, error) {
	switch table {
	case entities.DimDate:
		return encodeDates(s.Dates), nil
	case entities.DimProduct:
		return encodeProducts(s.Products), nil
	case entities.DimCustomer:
		return encodeCustomers(s.Customers), nil
	case entities.DimEmployee:
		return encodeEmployees(s.Employees), nil
	case entities.FactSales:
		return encodeSales(s.Sales), nil
	case entities.FactBudget:
		return encodeBudgets(s.Budgets), nil
	case entities.FactInventory:
		return encodeInventory(s.Inventory), nil
	case entities.DimKPITargets:
		return encodeKPITargets(s.KPITargets), nil
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

// EncodeRawTable renders a snapshot table as the text it would be written as
func EncodeRawTable(s *entities.Snapshot, table entities.Table) (*entities.RawTable, error) {
	rows, err := encodeTable(s, table)
	if err != nil {
		return nil, err
	}
	return entities.NewRawTable(table, table.Columns(), rows), nil
}

func itoa[K ~int](v K) string {
	return strconv.Itoa(int(v))
}

func encodeDates(dates []entities.DateDim) [][]string {
	rows := make([][]string, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, []string{
			itoa(d.Key),
			d.Date.Format(entities.DateLayout),
			itoa(d.Year),
			itoa(d.Quarter),
			itoa(d.Month),
			d.MonthName,
			itoa(d.Day),
			d.DayName,
			itoa(d.WeekOfYear),
			itoa(d.DayOfYear),
			entities.FormatBool(d.IsWeekend),
			itoa(d.FiscalYear),
			itoa(d.FiscalQuarter),
		})
	}
	return rows
}

func encodeProducts(products []entities.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			itoa(p.Key),
			p.Code,
			p.Name,
			p.Category,
			p.Vendor,
			entities.FormatMoney(p.UnitCost),
			entities.FormatMoney(p.UnitPrice),
			p.PackSize,
			p.LaunchDate.Format(entities.DateLayout),
			entities.FormatBool(p.IsActive),
		})
	}
	return rows
}

func encodeCustomers(customers []entities.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			itoa(c.Key),
			c.Code,
			c.Name,
			c.Region,
			c.City,
			c.Channel,
			c.CustomerType,
			itoa(c.CreditLimit),
			itoa(c.PaymentTerms),
			entities.FormatBool(c.IsActive),
		})
	}
	return rows
}

func encodeEmployees(employees []entities.Employee) [][]string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		reportsTo := ""
		if e.ReportsTo != nil {
			reportsTo = itoa(*e.ReportsTo)
		}
		rows = append(rows, []string{
			itoa(e.Key),
			e.EmployeeID,
			e.FirstName,
			e.LastName,
			e.Department,
			e.Position,
			e.HireDate.Format(entities.DateLayout),
			itoa(e.Salary),
			reportsTo,
			entities.FormatBool(e.IsActive),
		})
	}
	return rows
}

func encodeSales(sales []entities.Sale) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			itoa(s.Key),
			itoa(s.DateKey),
			itoa(s.ProductKey),
			itoa(s.CustomerKey),
			itoa(s.EmployeeKey),
			s.InvoiceNumber,
			itoa(s.Quantity),
			entities.FormatPercent(s.DiscountPercent),
			entities.FormatMoney(s.GrossSales),
			entities.FormatMoney(s.DiscountAmount),
			entities.FormatMoney(s.NetSales),
			entities.FormatMoney(s.COGS),
			entities.FormatMoney(s.GrossProfit),
		})
	}
	return rows
}

func encodeBudgets(budgets []entities.Budget) [][]string {
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{
			itoa(b.Key),
			itoa(b.DateKey),
			b.Department,
			entities.FormatMoney(b.BudgetAmount),
			entities.FormatMoney(b.ActualAmount),
			entities.FormatMoney(b.ForecastAmount),
		})
	}
	return rows
}

func encodeInventory(positions []entities.InventoryPosition) [][]string {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			itoa(p.Key),
			itoa(p.ProductKey),
			p.WarehouseLocation,
			itoa(p.StockOnHand),
			itoa(p.ReorderLevel),
			itoa(p.MaxStockLevel),
			p.LastStockDate.Format(entities.TimestampLayout),
		})
	}
	return rows
}

func encodeKPITargets(targets []entities.KPITarget) [][]string {
	rows := make([][]string, 0, len(targets))
	for _, k := range targets {
		rows = append(rows, []string{
			k.Name,
			k.TargetValue.String(),
			string(k.Period),
			k.Department,
		})
	}
	return rows
}
