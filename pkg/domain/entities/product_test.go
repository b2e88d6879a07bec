package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestProduct_Validation(t *testing.T) {
	launch := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)

	valid, err := NewProduct(1, "BEESAB001", "SAB Miller Beer Product 1", "Beer", "SAB Miller",
		decimal.RequireFromString("12.50"), decimal.RequireFromString("20.00"), "330ml", launch, true)
	if err != nil {
		t.Fatalf("Expected valid product creation to succeed: %v", err)
	}
	if valid.Code != "BEESAB001" {
		t.Errorf("Expected code BEESAB001, got %s", valid.Code)
	}

	testCases := []struct {
		name        string
		key         ProductKey
		code        string
		category    string
		cost        string
		price       string
		expectError string
	}{
		{"zero key", 0, "X", "Beer", "1.00", "2.00", "product key must be positive, got 0"},
		{"empty code", 1, "", "Beer", "1.00", "2.00", "product code cannot be empty"},
		{"empty category", 1, "X", "", "1.00", "2.00", "category cannot be empty"},
		{"negative cost", 1, "X", "Beer", "-1.00", "2.00", "unit cost cannot be negative, got -1"},
		{"price below cost", 1, "X", "Beer", "3.00", "2.00", "unit price 2 is below unit cost 3 for X"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.key, tc.code, "name", tc.category, "Vendor",
				decimal.RequireFromString(tc.cost), decimal.RequireFromString(tc.price), "1L", launch, true)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestEmployee_ReportsToMustBeEarlierKey(t *testing.T) {
	hire := time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC)

	head, err := NewEmployee(1, "EMP0001", "Thandi", "Nkosi", "Sales", "Sales Director", hire, 900000, nil, true)
	if err != nil {
		t.Fatalf("Expected department head creation to succeed: %v", err)
	}

	manager := head.Key
	if _, err := NewEmployee(2, "EMP0002", "Pieter", "Botha", "Sales", "Sales Rep", hire, 200000, &manager, true); err != nil {
		t.Fatalf("Expected report to earlier key to succeed: %v", err)
	}

	self := EmployeeKey(3)
	_, err = NewEmployee(3, "EMP0003", "Lerato", "Dlamini", "Sales", "Sales Rep", hire, 200000, &self, true)
	if err == nil {
		t.Fatal("Expected self-reporting employee to be rejected")
	}
	if err.Error() != "employee 3 cannot report to 3" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestCustomer_PaymentTerms(t *testing.T) {
	if _, err := NewCustomer(1, "CGAU0001", "Chain Store Sandton 1", "Gauteng", "Sandton", "Retail", "Chain Store", 100000, 30, true); err != nil {
		t.Fatalf("Expected valid customer creation to succeed: %v", err)
	}

	_, err := NewCustomer(1, "CGAU0001", "Chain Store Sandton 1", "Gauteng", "Sandton", "Retail", "Chain Store", 100000, 60, true)
	if err == nil {
		t.Fatal("Expected 60 day payment terms to be rejected")
	}
}
