package kpi

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesFact maps fact_sales for gorm queries
type SalesFact struct {
	SalesKey        int             `gorm:"column:sales_key;primaryKey"`
	DateKey         int             `gorm:"column:date_key"`
	ProductKey      int             `gorm:"column:product_key"`
	CustomerKey     int             `gorm:"column:customer_key"`
	EmployeeKey     int             `gorm:"column:employee_key"`
	InvoiceNumber   string          `gorm:"column:invoice_number"`
	Quantity        int             `gorm:"column:quantity"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(6,4)"`
	GrossSales      decimal.Decimal `gorm:"column:gross_sales;type:numeric(14,2)"`
	DiscountAmount  decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2)"`
	NetSales        decimal.Decimal `gorm:"column:net_sales;type:numeric(14,2)"`
	COGS            decimal.Decimal `gorm:"column:cogs;type:numeric(14,2)"`
	GrossProfit     decimal.Decimal `gorm:"column:gross_profit;type:numeric(14,2)"`
}

func (SalesFact) TableName() string { return "fact_sales" }

// BudgetFact maps fact_budget
type BudgetFact struct {
	BudgetKey      int             `gorm:"column:budget_key;primaryKey"`
	DateKey        int             `gorm:"column:date_key"`
	Department     string          `gorm:"column:department"`
	BudgetAmount   decimal.Decimal `gorm:"column:budget_amount;type:numeric(14,2)"`
	ActualAmount   decimal.Decimal `gorm:"column:actual_amount;type:numeric(14,2)"`
	ForecastAmount decimal.Decimal `gorm:"column:forecast_amount;type:numeric(14,2)"`
}

func (BudgetFact) TableName() string { return "fact_budget" }

// InventoryFact maps fact_inventory
type InventoryFact struct {
	InventoryKey      int       `gorm:"column:inventory_key;primaryKey"`
	ProductKey        int       `gorm:"column:product_key"`
	WarehouseLocation string    `gorm:"column:warehouse_location"`
	StockOnHand       int       `gorm:"column:stock_on_hand"`
	ReorderLevel      int       `gorm:"column:reorder_level"`
	MaxStockLevel     int       `gorm:"column:max_stock_level"`
	LastStockDate     time.Time `gorm:"column:last_stock_date"`
}

func (InventoryFact) TableName() string { return "fact_inventory" }

// KPITarget maps dim_kpi_targets
type KPITarget struct {
	KPIName     string          `gorm:"column:kpi_name;primaryKey"`
	TargetValue decimal.Decimal `gorm:"column:target_value;type:numeric(16,4)"`
	Period      string          `gorm:"column:period;primaryKey"`
	Department  string          `gorm:"column:department"`
}

func (KPITarget) TableName() string { return "dim_kpi_targets" }
