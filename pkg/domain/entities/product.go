package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the product dimension
type Product struct {
	Key        ProductKey
	Code       string
	Name       string
	Category   string
	Vendor     string
	UnitCost   decimal.Decimal
	UnitPrice  decimal.Decimal
	PackSize   string
	LaunchDate time.Time
	IsActive   bool
}

// NewProduct creates a validated Product
func NewProduct(key ProductKey, code, name, category, vendor string, unitCost, unitPrice decimal.Decimal, packSize string, launchDate time.Time, isActive bool) (*Product, error) {
	if key <= 0 {
		return nil, fmt.Errorf("product key must be positive, got %d", key)
	}
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}
	if unitPrice.LessThan(unitCost) {
		return nil, fmt.Errorf("unit price %s is below unit cost %s for %s", unitPrice, unitCost, code)
	}

	return &Product{
		Key:        key,
		Code:       code,
		Name:       name,
		Category:   category,
		Vendor:     vendor,
		UnitCost:   unitCost,
		UnitPrice:  unitPrice,
		PackSize:   packSize,
		LaunchDate: launchDate,
		IsActive:   isActive,
	}, nil
}
