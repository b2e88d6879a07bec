package entities

// Snapshot holds every table of one generation run
type Snapshot struct {
	Dates      []DateDim
	Products   []Product
	Customers  []Customer
	Employees  []Employee
	Sales      []Sale
	Budgets    []Budget
	Inventory  []InventoryPosition
	KPITargets []KPITarget
}

// RowCount returns the number of data rows of a table
func (s *Snapshot) RowCount(t Table) int {
	switch t {
	case DimDate:
		return len(s.Dates)
	case DimProduct:
		return len(s.Products)
	case DimCustomer:
		return len(s.Customers)
	case DimEmployee:
		return len(s.Employees)
	case FactSales:
		return len(s.Sales)
	case FactBudget:
		return len(s.Budgets)
	case FactInventory:
		return len(s.Inventory)
	case DimKPITargets:
		return len(s.KPITargets)
	default:
		return 0
	}
}
