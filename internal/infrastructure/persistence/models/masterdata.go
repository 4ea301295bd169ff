package models

import "github.com/shopspring/decimal"

// Master data is owned by other services; these models are read-only here.

// VendorModel is a supplier record
type VendorModel struct {
	VendorID string `gorm:"type:varchar(32);primaryKey"`
	Name     string `gorm:"type:varchar(200);not null"`
}

func (VendorModel) TableName() string { return "vendors" }

// CustomerModel is a customer record
type CustomerModel struct {
	CustomerID string `gorm:"type:varchar(32);primaryKey"`
	Name       string `gorm:"type:varchar(200);not null"`
}

func (CustomerModel) TableName() string { return "customers" }

// DepartmentModel is an organisational unit
type DepartmentModel struct {
	DepartmentID string `gorm:"type:varchar(32);primaryKey"`
	Name         string `gorm:"type:varchar(200);not null"`
}

func (DepartmentModel) TableName() string { return "departments" }

// EmployeeModel is a staff member within a department
type EmployeeModel struct {
	EmployeeID   string `gorm:"type:varchar(32);primaryKey"`
	DepartmentID string `gorm:"type:varchar(32);not null;index"`
	Name         string `gorm:"type:varchar(200);not null"`
}

func (EmployeeModel) TableName() string { return "employees" }

// AccountModel is an entry in the chart of accounts
type AccountModel struct {
	AccountID string `gorm:"type:varchar(32);primaryKey"`
	Name      string `gorm:"type:varchar(200);not null"`
}

func (AccountModel) TableName() string { return "financial_accounts" }

// EmployeeSalaryModel is one payroll line
type EmployeeSalaryModel struct {
	ID           uint            `gorm:"primaryKey"`
	DepartmentID string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_salary_line,priority:1"`
	EmployeeID   string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_salary_line,priority:2"`
	PayMonth     string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_salary_line,priority:3"`
	NetPay       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

func (EmployeeSalaryModel) TableName() string { return "employee_salaries" }

// All returns every model for AutoMigrate in tests
func All() []any {
	return []any{
		&CounterModel{},
		&AssetModel{}, &AssetMaintenanceModel{}, &AssetDepreciationModel{},
		&LiabilityModel{}, &PaymentModel{}, &ApprovalModel{}, &TransactionModel{},
		&VendorModel{}, &CustomerModel{}, &DepartmentModel{}, &EmployeeModel{},
		&AccountModel{}, &EmployeeSalaryModel{},
	}
}
