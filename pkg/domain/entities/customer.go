package entities

import "fmt"

// ValidPaymentTerms lists the payment terms, in days, a customer may have
var ValidPaymentTerms = []int{7, 14, 30, 45}

// Customer is a row of the customer dimension
type Customer struct {
	Key          CustomerKey
	Code         string
	Name         string
	Region       string
	City         string
	Channel      string
	CustomerType string
	CreditLimit  int
	PaymentTerms int
	IsActive     bool
}

// IsValidPaymentTerms reports whether days is one of ValidPaymentTerms
func IsValidPaymentTerms(days int) bool {
	for _, v := range ValidPaymentTerms {
		if v == days {
			return true
		}
	}
	return false
}

// NewCustomer creates a validated Customer
func NewCustomer(key CustomerKey, code, name, region, city, channel, customerType string, creditLimit, paymentTerms int, isActive bool) (*Customer, error) {
	if key <= 0 {
		return nil, fmt.Errorf("customer key must be positive, got %d", key)
	}
	if code == "" {
		return nil, fmt.Errorf("customer code cannot be empty")
	}
	if creditLimit < 0 {
		return nil, fmt.Errorf("credit limit cannot be negative, got %d", creditLimit)
	}
	if !IsValidPaymentTerms(paymentTerms) {
		return nil, fmt.Errorf("invalid payment terms %d (expected one of %v)", paymentTerms, ValidPaymentTerms)
	}

	return &Customer{
		Key:          key,
		Code:         code,
		Name:         name,
		Region:       region,
		City:         city,
		Channel:      channel,
		CustomerType: customerType,
		CreditLimit:  creditLimit,
		PaymentTerms: paymentTerms,
		IsActive:     isActive,
	}, nil
}
