package csv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// rowParser reads typed fields from a record and keeps the first error
type rowParser struct {
	record  []string
	columns []string
	err     error
}

func newRowParser(table entities.Table, record []string) *rowParser {
	return &rowParser{record: record, columns: table.Columns()}
}

func (p *rowParser) fail(i int, kind string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %q (expected %s)", p.columns[i], p.record[i], kind)
	}
}

func (p *rowParser) str(i int) string {
	return p.record[i]
}

func (p *rowParser) int(i int) int {
	v, err := strconv.Atoi(p.record[i])
	if err != nil {
		p.fail(i, "integer")
	}
	return v
}

func (p *rowParser) decimal(i int) decimal.Decimal {
	v, err := decimal.NewFromString(p.record[i])
	if err != nil {
		p.fail(i, "decimal")
	}
	return v
}

func (p *rowParser) date(i int) time.Time {
	v, err := time.Parse(entities.DateLayout, p.record[i])
	if err != nil {
		p.fail(i, "YYYY-MM-DD")
	}
	return v
}

func (p *rowParser) timestamp(i int) time.Time {
	v, err := time.Parse(entities.TimestampLayout, p.record[i])
	if err != nil {
		p.fail(i, "YYYY-MM-DD HH:MM:SS")
	}
	return v
}

func (p *rowParser) bool(i int) bool {
	v, ok := entities.ParseBool(p.record[i])
	if !ok {
		p.fail(i, "True or False")
	}
	return v
}

func decodeRow(s *entities.Snapshot, table entities.Table, record []string) error {
	p := newRowParser(table, record)

	switch table {
	case entities.DimDate:
		d := entities.DateDim{
			Key:           entities.DateKey(p.int(0)),
			Date:          p.date(1),
			Year:          p.int(2),
			Quarter:       p.int(3),
			Month:         p.int(4),
			MonthName:     p.str(5),
			Day:           p.int(6),
			DayName:       p.str(7),
			WeekOfYear:    p.int(8),
			DayOfYear:     p.int(9),
			IsWeekend:     p.bool(10),
			FiscalYear:    p.int(11),
			FiscalQuarter: p.int(12),
		}
		s.Dates = append(s.Dates, d)

	case entities.DimProduct:
		s.Products = append(s.Products, entities.Product{
			Key:        entities.ProductKey(p.int(0)),
			Code:       p.str(1),
			Name:       p.str(2),
			Category:   p.str(3),
			Vendor:     p.str(4),
			UnitCost:   p.decimal(5),
			UnitPrice:  p.decimal(6),
			PackSize:   p.str(7),
			LaunchDate: p.date(8),
			IsActive:   p.bool(9),
		})

	case entities.DimCustomer:
		s.Customers = append(s.Customers, entities.Customer{
			Key:          entities.CustomerKey(p.int(0)),
			Code:         p.str(1),
			Name:         p.str(2),
			Region:       p.str(3),
			City:         p.str(4),
			Channel:      p.str(5),
			CustomerType: p.str(6),
			CreditLimit:  p.int(7),
			PaymentTerms: p.int(8),
			IsActive:     p.bool(9),
		})

	case entities.DimEmployee:
		var reportsTo *entities.EmployeeKey
		if p.str(8) != "" {
			manager := entities.EmployeeKey(p.int(8))
			reportsTo = &manager
		}
		s.Employees = append(s.Employees, entities.Employee{
			Key:        entities.EmployeeKey(p.int(0)),
			EmployeeID: p.str(1),
			FirstName:  p.str(2),
			LastName:   p.str(3),
			Department: p.str(4),
			Position:   p.str(5),
			HireDate:   p.date(6),
			Salary:     p.int(7),
			ReportsTo:  reportsTo,
			IsActive:   p.bool(9),
		})

	case entities.FactSales:
		s.Sales = append(s.Sales, entities.Sale{
			Key:             p.int(0),
			DateKey:         entities.DateKey(p.int(1)),
			ProductKey:      entities.ProductKey(p.int(2)),
			CustomerKey:     entities.CustomerKey(p.int(3)),
			EmployeeKey:     entities.EmployeeKey(p.int(4)),
			InvoiceNumber:   p.str(5),
			Quantity:        p.int(6),
			DiscountPercent: p.decimal(7),
			GrossSales:      p.decimal(8),
			DiscountAmount:  p.decimal(9),
			NetSales:        p.decimal(10),
			COGS:            p.decimal(11),
			GrossProfit:     p.decimal(12),
		})

	case entities.FactBudget:
		s.Budgets = append(s.Budgets, entities.Budget{
			Key:            p.int(0),
			DateKey:        entities.DateKey(p.int(1)),
			Department:     p.str(2),
			BudgetAmount:   p.decimal(3),
			ActualAmount:   p.decimal(4),
			ForecastAmount: p.decimal(5),
		})

	case entities.FactInventory:
		s.Inventory = append(s.Inventory, entities.InventoryPosition{
			Key:               p.int(0),
			ProductKey:        entities.ProductKey(p.int(1)),
			WarehouseLocation: p.str(2),
			StockOnHand:       p.int(3),
			ReorderLevel:      p.int(4),
			MaxStockLevel:     p.int(5),
			LastStockDate:     p.timestamp(6),
		})

	case entities.DimKPITargets:
		s.KPITargets = append(s.KPITargets, entities.KPITarget{
			Name:        p.str(0),
			TargetValue: p.decimal(1),
			Period:      entities.Period(p.str(2)),
			Department:  p.str(3),
		})

	default:
		return fmt.Errorf("unknown table %q", table)
	}

	return p.err
}
