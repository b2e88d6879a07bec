package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales fact table
type Sale struct {
	Key             int
	DateKey         DateKey
	ProductKey      ProductKey
	CustomerKey     CustomerKey
	EmployeeKey     EmployeeKey
	InvoiceNumber   string
	Quantity        int
	DiscountPercent decimal.Decimal
	GrossSales      decimal.Decimal
	DiscountAmount  decimal.Decimal
	NetSales        decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
}

// InvoiceNumberFor returns the invoice number of a sales key
func InvoiceNumberFor(salesKey int) string {
	return fmt.Sprintf("INV%06d", salesKey)
}

// NewSale creates a sales line priced from the product.
// The financial columns are computed exactly and rounded once at the end.
func NewSale(key int, dateKey DateKey, product *Product, customerKey CustomerKey, employeeKey EmployeeKey, quantity int, discountPercent decimal.Decimal) (*Sale, error) {
	if key <= 0 {
		return nil, fmt.Errorf("sales key must be positive, got %d", key)
	}
	if product == nil {
		return nil, fmt.Errorf("sales line %d has no product", key)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("discount percent must be in [0,1), got %s", discountPercent)
	}

	qty := decimal.NewFromInt(int64(quantity))
	gross := qty.Mul(product.UnitPrice)
	discount := gross.Mul(discountPercent)
	net := gross.Sub(discount)
	cogs := qty.Mul(product.UnitCost)
	profit := net.Sub(cogs)

	return &Sale{
		Key:             key,
		DateKey:         dateKey,
		ProductKey:      product.Key,
		CustomerKey:     customerKey,
		EmployeeKey:     employeeKey,
		InvoiceNumber:   InvoiceNumberFor(key),
		Quantity:        quantity,
		DiscountPercent: discountPercent,
		GrossSales:      RoundMoney(gross),
		DiscountAmount:  RoundMoney(discount),
		NetSales:        RoundMoney(net),
		COGS:            RoundMoney(cogs),
		GrossProfit:     RoundMoney(profit),
	}, nil
}
