package entities

import "github.com/shopspring/decimal"

// Budget is a row of the budget fact table: one department for one month
type Budget struct {
	Key            int
	DateKey        DateKey
	Department     string
	BudgetAmount   decimal.Decimal
	ActualAmount   decimal.Decimal
	ForecastAmount decimal.Decimal
}
