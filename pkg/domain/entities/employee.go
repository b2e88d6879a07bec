package entities

import (
	"fmt"
	"time"
)

// Employee is a row of the employee dimension
type Employee struct {
	Key        EmployeeKey
	EmployeeID string
	FirstName  string
	LastName   string
	Department string
	Position   string
	HireDate   time.Time
	Salary     int
	ReportsTo  *EmployeeKey // nil for department heads
	IsActive   bool
}

// NewEmployee creates a validated Employee.
// A manager reference must point at an earlier key, which keeps the hierarchy acyclic.
func NewEmployee(key EmployeeKey, employeeID, firstName, lastName, department, position string, hireDate time.Time, salary int, reportsTo *EmployeeKey, isActive bool) (*Employee, error) {
	if key <= 0 {
		return nil, fmt.Errorf("employee key must be positive, got %d", key)
	}
	if employeeID == "" {
		return nil, fmt.Errorf("employee id cannot be empty")
	}
	if department == "" {
		return nil, fmt.Errorf("department cannot be empty")
	}
	if salary < 0 {
		return nil, fmt.Errorf("salary cannot be negative, got %d", salary)
	}
	if reportsTo != nil && *reportsTo >= key {
		return nil, fmt.Errorf("employee %d cannot report to %d", key, *reportsTo)
	}

	return &Employee{
		Key:        key,
		EmployeeID: employeeID,
		FirstName:  firstName,
		LastName:   lastName,
		Department: department,
		Position:   position,
		HireDate:   hireDate,
		Salary:     salary,
		ReportsTo:  reportsTo,
		IsActive:   isActive,
	}, nil
}
