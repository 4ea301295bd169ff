package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/masterdata"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDirectory implements masterdata.Directory against the master data tables
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a new GormDirectory
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) exists(ctx context.Context, model any, column, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	var count int64
	if err := d.db.WithContext(ctx).Model(model).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// VendorExists reports whether the vendor is on file
func (d *GormDirectory) VendorExists(ctx context.Context, vendorID string) (bool, error) {
	return d.exists(ctx, &models.VendorModel{}, "vendor_id", vendorID)
}

// CustomerExists reports whether the customer is on file
func (d *GormDirectory) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	return d.exists(ctx, &models.CustomerModel{}, "customer_id", customerID)
}

// DepartmentExists reports whether the department is on file
func (d *GormDirectory) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	return d.exists(ctx, &models.DepartmentModel{}, "department_id", departmentID)
}

// AccountExists reports whether the account is in the chart of accounts
func (d *GormDirectory) AccountExists(ctx context.Context, accountID string) (bool, error) {
	return d.exists(ctx, &models.AccountModel{}, "account_id", accountID)
}

// EmployeeInDepartment reports whether the employee belongs to the department
func (d *GormDirectory) EmployeeInDepartment(ctx context.Context, departmentID, employeeID string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("employee_id = ? AND department_id = ?", employeeID, departmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindEmployeeSalary finds the payroll line for an employee and month
func (d *GormDirectory) FindEmployeeSalary(ctx context.Context, departmentID, employeeID, payMonth string) (*masterdata.EmployeeSalary, error) {
	var row models.EmployeeSalaryModel
	if err := d.db.WithContext(ctx).
		Where("department_id = ? AND employee_id = ? AND pay_month = ?", departmentID, employeeID, payMonth).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &masterdata.EmployeeSalary{
		DepartmentID: row.DepartmentID,
		EmployeeID:   row.EmployeeID,
		PayMonth:     row.PayMonth,
		NetPay:       row.NetPay,
	}, nil
}

var _ masterdata.Directory = (*GormDirectory)(nil)
