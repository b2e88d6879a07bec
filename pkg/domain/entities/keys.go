package entities

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/vsinha/bigen/pkg/apperrors"
)

// DateKey is the YYYYMMDD integer form of a calendar day
type DateKey int

// ProductKey identifies a row of the product dimension
type ProductKey int

// CustomerKey identifies a row of the customer dimension
type CustomerKey int

// EmployeeKey identifies a row of the employee dimension
type EmployeeKey int

// DimensionKey is satisfied by the surrogate keys fact rows may reference
type DimensionKey interface {
	~int
}

// DateKeyOf returns the key for the calendar day of t
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// ActivePool is the set of keys a fact generator may draw from.
// It can only be built from active dimension rows and is never empty.
type ActivePool[K DimensionKey] struct {
	keys []K
}

func newActivePool[K DimensionKey](name string, keys []K) (*ActivePool[K], error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEmptyActivePool, name)
	}

	sorted := make([]K, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &ActivePool[K]{keys: sorted}, nil
}

// ActiveProducts builds the pool of active product keys
func ActiveProducts(products []Product) (*ActivePool[ProductKey], error) {
	var keys []ProductKey
	for i := range products {
		if products[i].IsActive {
			keys = append(keys, products[i].Key)
		}
	}
	return newActivePool("products", keys)
}

// ActiveCustomers builds the pool of active customer keys
func ActiveCustomers(customers []Customer) (*ActivePool[CustomerKey], error) {
	var keys []CustomerKey
	for i := range customers {
		if customers[i].IsActive {
			keys = append(keys, customers[i].Key)
		}
	}
	return newActivePool("customers", keys)
}

// ActiveEmployees builds the pool of active employee keys across all departments
func ActiveEmployees(employees []Employee) (*ActivePool[EmployeeKey], error) {
	var keys []EmployeeKey
	for i := range employees {
		if employees[i].IsActive {
			keys = append(keys, employees[i].Key)
		}
	}
	return newActivePool("employees", keys)
}

// Pick draws one key uniformly
func (p *ActivePool[K]) Pick(r *rand.Rand) K {
	return p.keys[r.Intn(len(p.keys))]
}

// Len returns the number of keys in the pool
func (p *ActivePool[K]) Len() int {
	return len(p.keys)
}
