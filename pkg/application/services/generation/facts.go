package generation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// salesPools are the active key pools sales lines draw their foreign keys from
type salesPools struct {
	products  *entities.ActivePool[entities.ProductKey]
	customers *entities.ActivePool[entities.CustomerKey]
	employees *entities.ActivePool[entities.EmployeeKey]
}

func newSalesPools(products []entities.Product, customers []entities.Customer, employees []entities.Employee) (*salesPools, error) {
	productPool, err := entities.ActiveProducts(products)
	if err != nil {
		return nil, err
	}
	customerPool, err := entities.ActiveCustomers(customers)
	if err != nil {
		return nil, err
	}
	employeePool, err := entities.ActiveEmployees(employees)
	if err != nil {
		return nil, err
	}
	return &salesPools{products: productPool, customers: customerPool, employees: employeePool}, nil
}

// GenerateSales builds count sales lines.
//
// Draw order per line: date, product, customer, employee, quantity,
// discount percent. Products come from the active pool, so a category whose
// products are all inactive is never drawn.
func GenerateSales(r *rand.Rand, count int, dates []entities.DateDim, products []entities.Product,
	customers []entities.Customer, employees []entities.Employee) ([]entities.Sale, error) {
	if count == 0 {
		return nil, nil
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no dates to draw sales from")
	}

	pools, err := newSalesPools(products, customers, employees)
	if err != nil {
		return nil, err
	}

	byKey := make(map[entities.ProductKey]*entities.Product, len(products))
	for i := range products {
		byKey[products[i].Key] = &products[i]
	}

	sales := make([]entities.Sale, 0, count)
	for key := 1; key <= count; key++ {
		date := choice(r, dates)
		product := byKey[pools.products.Pick(r)]
		customer := pools.customers.Pick(r)
		employee := pools.employees.Pick(r)

		terms := categoryTerms[product.Category]
		quantity := 1 + r.Intn(terms.MaxQuantity)
		discount := decimal.NewFromFloat(r.Float64() * terms.MaxDiscount).Round(entities.PercentPlaces)

		sale, err := entities.NewSale(key, date.Key, product, customer, employee, quantity, discount)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}

	return sales, nil
}

// GenerateBudgets builds one budget row per department per month-start day.
//
// Draw order per row: budget amount, actual factor, forecast factor.
func GenerateBudgets(r *rand.Rand, dates []entities.DateDim) ([]entities.Budget, error) {
	var budgets []entities.Budget
	key := 1

	for _, dept := range departments {
		for _, date := range dates {
			if !date.IsMonthStart() {
				continue
			}
			budget := decimal.NewFromInt(int64(intBetween(r, minBudget, maxBudget)))
			actual := budget.Mul(decimal.NewFromFloat(floatBetween(r, 0.8, 1.2)))
			forecast := budget.Mul(decimal.NewFromFloat(floatBetween(r, 0.9, 1.1)))

			budgets = append(budgets, entities.Budget{
				Key:            key,
				DateKey:        date.Key,
				Department:     dept.Name,
				BudgetAmount:   entities.RoundMoney(budget),
				ActualAmount:   entities.RoundMoney(actual),
				ForecastAmount: entities.RoundMoney(forecast),
			})
			key++
		}
	}

	return budgets, nil
}

// GenerateInventory builds one stock position per active product.
//
// Draw order per row: warehouse, reorder level, max stock level, stock on
// hand, days before the end date, second of day.
func GenerateInventory(r *rand.Rand, products []entities.Product, endDate time.Time) ([]entities.InventoryPosition, error) {
	pool, err := entities.ActiveProducts(products)
	if err != nil {
		return nil, err
	}

	lastDay := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	positions := make([]entities.InventoryPosition, 0, pool.Len())
	key := 1

	for i := range products {
		p := &products[i]
		if !p.IsActive {
			continue
		}
		warehouse := choice(r, warehouses)
		reorder := intBetween(r, 50, 200)
		maxStock := intBetween(r, 500, 1500)
		stock := intBetween(r, reorder, maxStock)
		counted := lastDay.AddDate(0, 0, -r.Intn(31)).Add(time.Duration(r.Intn(86400)) * time.Second)

		position, err := entities.NewInventoryPosition(key, p.Key, warehouse, stock, reorder, maxStock, counted)
		if err != nil {
			return nil, fmt.Errorf("inventory for product %d: %w", p.Key, err)
		}
		positions = append(positions, *position)
		key++
	}

	return positions, nil
}

// KPITargets returns the static KPI target lookup
func KPITargets() []entities.KPITarget {
	return []entities.KPITarget{
		{Name: "Total Sales", TargetValue: decimal.NewFromInt(50000000), Period: entities.Annual, Department: "Sales"},
		{Name: "Gross Margin %", TargetValue: decimal.NewFromInt(35), Period: entities.Annual, Department: "Sales"},
		{Name: "Customer Satisfaction", TargetValue: decimal.NewFromInt(85), Period: entities.Quarterly, Department: "Sales"},
		{Name: "Inventory Turnover", TargetValue: decimal.NewFromInt(12), Period: entities.Annual, Department: "Operations"},
		{Name: "Employee Retention %", TargetValue: decimal.NewFromInt(90), Period: entities.Annual, Department: "HR"},
		{Name: "Cost per Case", TargetValue: decimal.NewFromInt(25), Period: entities.Monthly, Department: "Operations"},
	}
}
