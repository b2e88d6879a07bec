package generation

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

var (
	productLaunchBase = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	employeeHireBase  = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
)

// GenerateDates returns one row per calendar day in [start, end]
func GenerateDates(start, end time.Time) []entities.DateDim {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var dates []entities.DateDim
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dates = append(dates, entities.NewDateDim(day))
	}
	return dates
}

// GenerateProducts builds 10-15 products for every category and vendor pair.
//
// Draw order per pair: product count. Per product: unit price, cost factor,
// pack size, launch day offset, inactive flag (1 in 4).
func GenerateProducts(r *rand.Rand) ([]entities.Product, error) {
	var products []entities.Product
	key := entities.ProductKey(1)

	for _, category := range categories {
		prices := categoryPrices[category]
		for _, vendor := range vendors {
			count := intBetween(r, 10, 15)
			for i := 0; i < count; i++ {
				price := entities.RoundMoney(decimal.NewFromFloat(floatBetween(r, prices.Min, prices.Max)))
				factor := decimal.NewFromFloat(floatBetween(r, minCostFactor, maxCostFactor))
				cost := entities.RoundMoney(price.Mul(factor))
				if cost.GreaterThan(price) {
					cost = price
				}
				packSize := choice(r, packSizes)
				launch := productLaunchBase.AddDate(0, 0, r.Intn(1096))
				active := !oneIn(r, 4)

				code := fmt.Sprintf("%s%s%03d", codePrefix(category), codePrefix(vendor), i+1)
				name := fmt.Sprintf("%s %s Product %d", vendor, category, i+1)

				product, err := entities.NewProduct(key, code, name, category, vendor, cost, price, packSize, launch, active)
				if err != nil {
					return nil, fmt.Errorf("product %d: %w", key, err)
				}
				products = append(products, *product)
				key++
			}
		}
	}

	return products, nil
}

// GenerateCustomers builds 80-90 customers per region.
//
// Draw order per region: customer count. Per customer: city, channel,
// customer type, credit limit, payment terms, inactive flag (1 in 4).
func GenerateCustomers(r *rand.Rand) ([]entities.Customer, error) {
	var customers []entities.Customer
	key := entities.CustomerKey(1)

	for _, reg := range regions {
		count := intBetween(r, 80, 90)
		for i := 0; i < count; i++ {
			city := choice(r, reg.Cities)
			channel := choice(r, channels)
			customerType := choice(r, customerTypes)
			creditLimit := intBetween(r, 50000, 500000)
			terms := choice(r, paymentTerms)
			active := !oneIn(r, 4)

			code := fmt.Sprintf("C%s%04d", codePrefix(reg.Name), key)
			name := fmt.Sprintf("%s %s %d", customerType, city, i+1)

			customer, err := entities.NewCustomer(key, code, name, reg.Name, city, channel, customerType, creditLimit, terms, active)
			if err != nil {
				return nil, fmt.Errorf("customer %d: %w", key, err)
			}
			customers = append(customers, *customer)
			key++
		}
	}

	return customers, nil
}

// GenerateEmployees builds 50-55 employees per department.
// The first employee of each department holds the head position and reports
// to nobody; managers report to the head and everyone else to a lead hired
// before them in the same department, so ReportsTo always points backwards.
//
// Draw order per department: employee count. Per employee: position (heads
// skip this draw), first name, last name, salary, hire day offset, inactive
// flag (1 in 5), then the manager draw for non-heads.
func GenerateEmployees(r *rand.Rand) ([]entities.Employee, error) {
	var employees []entities.Employee
	key := entities.EmployeeKey(1)

	for _, dept := range departments {
		head := dept.Positions[len(dept.Positions)-1]
		staff := dept.Positions[:len(dept.Positions)-1]

		var headKey entities.EmployeeKey
		var leads []entities.EmployeeKey

		count := intBetween(r, 50, 55)
		for i := 0; i < count; i++ {
			position := head
			if i > 0 {
				position = choice(r, staff)
			}
			first := choice(r, firstNames)
			last := choice(r, lastNames)
			salaries, ok := positionSalaries[position]
			if !ok {
				salaries = defaultSalary
			}
			salary := intBetween(r, salaries.Min, salaries.Max)
			hired := employeeHireBase.AddDate(0, 0, r.Intn(1826))
			active := !oneIn(r, 5)

			var reportsTo *entities.EmployeeKey
			switch {
			case i == 0:
				headKey = key
			case isManager(position):
				manager := headKey
				reportsTo = &manager
			default:
				manager := leads[r.Intn(len(leads))]
				reportsTo = &manager
			}

			employee, err := entities.NewEmployee(key, fmt.Sprintf("EMP%04d", key), first, last,
				dept.Name, position, hired, salary, reportsTo, active)
			if err != nil {
				return nil, fmt.Errorf("employee %d: %w", key, err)
			}
			employees = append(employees, *employee)

			if i == 0 || isManager(position) {
				leads = append(leads, key)
			}
			key++
		}
	}

	return employees, nil
}

func isManager(position string) bool {
	return strings.Contains(position, "Manager")
}

func codePrefix(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToUpper(s)
}
