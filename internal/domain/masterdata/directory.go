// Package masterdata exposes read-only lookups into the organisation's
// vendors, customers, departments, employees, payroll and chart of accounts.
// Those records are maintained elsewhere; the ledger only checks them.
package masterdata

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeSalary is one payroll line for an employee and month
type EmployeeSalary struct {
	DepartmentID string
	EmployeeID   string
	PayMonth     string
	NetPay       decimal.Decimal
}

// Directory answers existence checks against master data
type Directory interface {
	VendorExists(ctx context.Context, vendorID string) (bool, error)
	CustomerExists(ctx context.Context, customerID string) (bool, error)
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)

	// EmployeeInDepartment reports whether the employee belongs to the department
	EmployeeInDepartment(ctx context.Context, departmentID, employeeID string) (bool, error)

	AccountExists(ctx context.Context, accountID string) (bool, error)

	// FindEmployeeSalary returns shared.ErrNotFound when no payroll line matches
	FindEmployeeSalary(ctx context.Context, departmentID, employeeID, payMonth string) (*EmployeeSalary, error)
}
