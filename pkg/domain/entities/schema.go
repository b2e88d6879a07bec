package entities

// Table identifies one file of the star schema snapshot
type Table string

const (
	DimDate       Table = "dim_date"
	DimProduct    Table = "dim_product"
	DimCustomer   Table = "dim_customer"
	DimEmployee   Table = "dim_employee"
	FactSales     Table = "fact_sales"
	FactBudget    Table = "fact_budget"
	FactInventory Table = "fact_inventory"
	DimKPITargets Table = "dim_kpi_targets"
)

// Date layouts used in every file of the snapshot
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Tables lists the snapshot tables in the order they are written
var Tables = []Table{
	DimDate,
	DimProduct,
	DimCustomer,
	DimEmployee,
	FactSales,
	FactBudget,
	FactInventory,
	DimKPITargets,
}

var columns = map[Table][]string{
	DimDate: {
		"DateKey", "Date", "Year", "Quarter", "Month", "MonthName", "Day", "DayName",
		"WeekOfYear", "DayOfYear", "IsWeekend", "FiscalYear", "FiscalQuarter",
	},
	DimProduct: {
		"ProductKey", "ProductCode", "ProductName", "Category", "Vendor",
		"UnitCost", "UnitPrice", "PackSize", "LaunchDate", "IsActive",
	},
	DimCustomer: {
		"CustomerKey", "CustomerCode", "CustomerName", "Region", "City", "Channel",
		"CustomerType", "CreditLimit", "PaymentTerms", "IsActive",
	},
	DimEmployee: {
		"EmployeeKey", "EmployeeID", "FirstName", "LastName", "Department", "Position",
		"HireDate", "Salary", "ReportsTo", "IsActive",
	},
	FactSales: {
		"SalesKey", "DateKey", "ProductKey", "CustomerKey", "EmployeeKey", "InvoiceNumber",
		"Quantity", "DiscountPercent", "GrossSales", "DiscountAmount", "NetSales", "COGS", "GrossProfit",
	},
	FactBudget: {
		"BudgetKey", "DateKey", "Department", "BudgetAmount", "ActualAmount", "ForecastAmount",
	},
	FactInventory: {
		"InventoryKey", "ProductKey", "WarehouseLocation", "StockOnHand",
		"ReorderLevel", "MaxStockLevel", "LastStockDate",
	},
	DimKPITargets: {
		"KPIName", "TargetValue", "Period", "Department",
	},
}

// FileName returns the CSV file name of the table
func (t Table) FileName() string {
	return string(t) + ".csv"
}

// Columns returns a copy of the table's header in file order
func (t Table) Columns() []string {
	cols := columns[t]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}
