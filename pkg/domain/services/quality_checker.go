package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
	"github.com/vsinha/bigen/pkg/domain/repositories"
)

// IdentityTolerance is the rounding slack allowed on derived sales amounts
var IdentityTolerance = decimal.RequireFromString("0.01")

// QualityChecker re-reads a snapshot and reports invariant violations.
// It only reports; nothing is corrected.
type QualityChecker struct {
	hierarchy *HierarchyValidator
}

// NewQualityChecker creates a new quality checker
func NewQualityChecker() *QualityChecker {
	return &QualityChecker{hierarchy: NewHierarchyValidator()}
}

// Check runs every file check and returns one result per snapshot table
func (c *QualityChecker) Check(reader repositories.TableReader) []entities.FileQuality {
	tables := make(map[entities.Table]*entities.RawTable, len(entities.Tables))
	readErrs := make(map[entities.Table]error)
	for _, table := range entities.Tables {
		raw, err := reader.ReadTable(table)
		if err != nil {
			readErrs[table] = err
			continue
		}
		tables[table] = raw
	}

	results := make([]entities.FileQuality, 0, len(entities.Tables))
	for _, table := range entities.Tables {
		if err, failed := readErrs[table]; failed {
			// Only a missing file fails; a file that exists but cannot be parsed is a finding
			result := entities.FileQuality{Table: table, Status: entities.StatusPass}
			if errors.Is(err, apperrors.ErrFileNotFound) {
				result.Status = entities.StatusFail
				result.Issues = []string{"File not found"}
			} else {
				result.AddIssue(fmt.Sprintf("File could not be read: %v", err))
			}
			results = append(results, result)
			continue
		}

		f := newFileCheck(tables[table])
		f.requireColumns()

		switch table {
		case entities.DimDate:
			c.checkDates(f)
		case entities.DimProduct:
			c.checkProducts(f)
		case entities.DimCustomer:
			c.checkCustomers(f)
		case entities.DimEmployee:
			c.checkEmployees(f)
		case entities.FactSales:
			c.checkSales(f, tables)
		case entities.FactBudget:
			c.checkBudgets(f, tables)
		case entities.FactInventory:
			c.checkInventory(f, tables)
		case entities.DimKPITargets:
			c.checkKPITargets(f)
		}

		results = append(results, *f.result)
	}

	return results
}

func (c *QualityChecker) checkDates(f *fileCheck) {
	if f.count(func(i int) bool { return f.rowHasEmpty(i) }) > 0 {
		f.issuef("Null values found")
	}
	f.unique("DateKey")

	days := make(map[time.Time]bool)
	var first, last time.Time
	mismatched := 0
	for i := range f.raw.Rows {
		day, err := time.Parse(entities.DateLayout, f.value(i, "Date"))
		if err != nil {
			continue
		}
		days[day] = true
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
		if key, ok := f.intAt(i, "DateKey"); !ok || entities.DateKey(key) != entities.DateKeyOf(day) {
			mismatched++
		}
	}
	if len(days) > 0 {
		expected := int(last.Sub(first).Hours()/24) + 1
		if len(days) != expected {
			f.issuef("Missing dates in sequence")
		}
	}
	if mismatched > 0 {
		f.issuef("%d records have DateKey not matching Date", mismatched)
	}
}

func (c *QualityChecker) checkProducts(f *fileCheck) {
	f.unique("ProductKey")
	f.unique("ProductCode")
	f.notEmpty("ProductKey", "ProductCode", "ProductName", "Category")
	f.numeric("UnitCost", "UnitPrice")

	if f.count(func(i int) bool { return f.isNegative(i, "UnitCost") || f.isNegative(i, "UnitPrice") }) > 0 {
		f.issuef("Negative unit cost or price found")
	}

	invalid := f.count(func(i int) bool {
		cost, okCost := f.decimalAt(i, "UnitCost")
		price, okPrice := f.decimalAt(i, "UnitPrice")
		return okCost && okPrice && price.LessThan(cost)
	})
	if invalid > 0 {
		f.issuef("%d products have UnitPrice < UnitCost", invalid)
	}
}

func (c *QualityChecker) checkCustomers(f *fileCheck) {
	f.unique("CustomerKey")
	f.unique("CustomerCode")

	if f.count(func(i int) bool { return f.isNegative(i, "CreditLimit") }) > 0 {
		f.issuef("Negative credit limits found")
	}

	invalid := f.count(func(i int) bool {
		days, ok := f.intAt(i, "PaymentTerms")
		return !ok || !entities.IsValidPaymentTerms(days)
	})
	if invalid > 0 {
		f.issuef("Invalid payment terms found")
	}
}

func (c *QualityChecker) checkEmployees(f *fileCheck) {
	f.unique("EmployeeKey")
	f.unique("EmployeeID")

	if f.count(func(i int) bool { return f.isNegative(i, "Salary") }) > 0 {
		f.issuef("Negative salary values found")
	}

	if !f.raw.HasColumn("EmployeeKey") || !f.raw.HasColumn("ReportsTo") {
		return
	}

	reportsTo := make(map[string]string, len(f.raw.Rows))
	for i := range f.raw.Rows {
		reportsTo[f.value(i, "EmployeeKey")] = f.value(i, "ReportsTo")
	}

	result := c.hierarchy.ValidateHierarchy(reportsTo)
	if len(result.Unresolved) > 0 {
		unresolved := make(map[string]bool, len(result.Unresolved))
		for _, manager := range result.Unresolved {
			unresolved[manager] = true
		}
		orphans := f.count(func(i int) bool { return unresolved[f.value(i, "ReportsTo")] })
		f.issuef("%d employees report to non-existent managers", orphans)
	}
	for _, cycle := range result.CyclePaths {
		f.issuef("Cyclic reporting chain: %s", strings.Join(cycle, " -> "))
	}
}

func (c *QualityChecker) checkSales(f *fileCheck, tables map[entities.Table]*entities.RawTable) {
	f.unique("SalesKey")
	f.unique("InvoiceNumber")
	f.numeric("Quantity", "DiscountPercent", "GrossSales", "DiscountAmount", "NetSales", "COGS", "GrossProfit")

	if f.count(func(i int) bool { return f.isNegative(i, "Quantity") }) > 0 {
		f.issuef("Negative quantities found")
	}
	if zero := f.count(func(i int) bool { q, ok := f.intAt(i, "Quantity"); return ok && q == 0 }); zero > 0 {
		f.issuef("%d records have zero quantity", zero)
	}

	for _, col := range []string{"GrossSales", "DiscountAmount", "NetSales", "COGS"} {
		if f.count(func(i int) bool { return f.isNegative(i, col) }) > 0 {
			f.issuef("Negative %s values found", col)
		}
	}

	if n := f.count(func(i int) bool {
		pct, ok := f.decimalAt(i, "DiscountPercent")
		return ok && (pct.IsNegative() || pct.GreaterThanOrEqual(decimal.NewFromInt(1)))
	}); n > 0 {
		f.issuef("%d records have DiscountPercent outside [0, 1)", n)
	}

	if n := f.count(func(i int) bool {
		gross, ok1 := f.decimalAt(i, "GrossSales")
		discount, ok2 := f.decimalAt(i, "DiscountAmount")
		return ok1 && ok2 && discount.GreaterThan(gross)
	}); n > 0 {
		f.issuef("%d records have discount > gross sales", n)
	}

	if n := f.count(func(i int) bool {
		return !f.identityHolds(i, "NetSales", "GrossSales", "DiscountAmount")
	}); n > 0 {
		f.issuef("%d records have net sales calculation errors", n)
	}
	if n := f.count(func(i int) bool {
		return !f.identityHolds(i, "GrossProfit", "NetSales", "COGS")
	}); n > 0 {
		f.issuef("%d records have gross profit calculation errors", n)
	}

	f.references("DateKey", tables[entities.DimDate], "DateKey", "")
	f.references("ProductKey", tables[entities.DimProduct], "ProductKey", "IsActive")
	f.references("CustomerKey", tables[entities.DimCustomer], "CustomerKey", "IsActive")
	f.references("EmployeeKey", tables[entities.DimEmployee], "EmployeeKey", "IsActive")
}

func (c *QualityChecker) checkBudgets(f *fileCheck, tables map[entities.Table]*entities.RawTable) {
	f.unique("BudgetKey")
	f.numeric("BudgetAmount", "ActualAmount", "ForecastAmount")

	if f.count(func(i int) bool {
		return f.isNegative(i, "BudgetAmount") || f.isNegative(i, "ActualAmount") || f.isNegative(i, "ForecastAmount")
	}) > 0 {
		f.issuef("Negative budget amounts found")
	}
	if f.count(func(i int) bool { return strings.TrimSpace(f.value(i, "Department")) == "" }) > 0 {
		f.issuef("Missing department values found")
	}

	f.references("DateKey", tables[entities.DimDate], "DateKey", "")
}

func (c *QualityChecker) checkInventory(f *fileCheck, tables map[entities.Table]*entities.RawTable) {
	f.unique("InventoryKey")
	f.numeric("StockOnHand", "ReorderLevel", "MaxStockLevel")

	if f.count(func(i int) bool { return f.isNegative(i, "StockOnHand") }) > 0 {
		f.issuef("Negative stock on hand found")
	}
	if f.count(func(i int) bool { return f.isNegative(i, "ReorderLevel") }) > 0 {
		f.issuef("Negative reorder levels found")
	}
	if f.count(func(i int) bool { return f.isNegative(i, "MaxStockLevel") }) > 0 {
		f.issuef("Negative maximum stock levels found")
	}

	below := f.count(func(i int) bool {
		stock, ok1 := f.intAt(i, "StockOnHand")
		reorder, ok2 := f.intAt(i, "ReorderLevel")
		return ok1 && ok2 && stock < reorder
	})
	if below > 0 {
		f.issuef("%d items below reorder point", below)
	}

	above := f.count(func(i int) bool {
		stock, ok1 := f.intAt(i, "StockOnHand")
		maxStock, ok2 := f.intAt(i, "MaxStockLevel")
		return ok1 && ok2 && stock > maxStock
	})
	if above > 0 {
		f.issuef("%d items above maximum stock level", above)
	}

	f.references("ProductKey", tables[entities.DimProduct], "ProductKey", "")
}

func (c *QualityChecker) checkKPITargets(f *fileCheck) {
	f.notEmpty("KPIName", "Period")
	f.numeric("TargetValue")

	seen := make(map[string]int)
	for i := range f.raw.Rows {
		seen[f.value(i, "KPIName")+"|"+f.value(i, "Period")]++
	}
	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates++
		}
	}
	if duplicates > 0 {
		f.issuef("Duplicate KPI targets found for %d name and period pairs", duplicates)
	}
}
