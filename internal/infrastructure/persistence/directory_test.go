package persistence

import (
	"context"
	"testing"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.VendorModel{VendorID: "VEN-001", Name: "Acme Supplies"}).Error)
	require.NoError(t, db.Create(&models.CustomerModel{CustomerID: "CUS-001", Name: "Globex"}).Error)
	require.NoError(t, db.Create(&models.DepartmentModel{DepartmentID: "DEPT-01", Name: "Engineering"}).Error)
	require.NoError(t, db.Create(&models.EmployeeModel{EmployeeID: "EMP-01", DepartmentID: "DEPT-01", Name: "Asha"}).Error)
	require.NoError(t, db.Create(&models.AccountModel{AccountID: "ACC-BANK", Name: "Operating account"}).Error)
	require.NoError(t, db.Create(&models.EmployeeSalaryModel{
		DepartmentID: "DEPT-01", EmployeeID: "EMP-01", PayMonth: "2026-03", NetPay: decimal.NewFromInt(50000),
	}).Error)
}

func TestGormDirectory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedDirectory(t, db)
	dir := NewGormDirectory(db)

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"known vendor", func() (bool, error) { return dir.VendorExists(ctx, "VEN-001") }, true},
		{"unknown vendor", func() (bool, error) { return dir.VendorExists(ctx, "VEN-404") }, false},
		{"empty vendor", func() (bool, error) { return dir.VendorExists(ctx, "") }, false},
		{"known customer", func() (bool, error) { return dir.CustomerExists(ctx, "CUS-001") }, true},
		{"vendor is not a customer", func() (bool, error) { return dir.CustomerExists(ctx, "VEN-001") }, false},
		{"known department", func() (bool, error) { return dir.DepartmentExists(ctx, "DEPT-01") }, true},
		{"known account", func() (bool, error) { return dir.AccountExists(ctx, "ACC-BANK") }, true},
		{"employee in department", func() (bool, error) { return dir.EmployeeInDepartment(ctx, "DEPT-01", "EMP-01") }, true},
		{"employee in other department", func() (bool, error) { return dir.EmployeeInDepartment(ctx, "DEPT-02", "EMP-01") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("finds the payroll line", func(t *testing.T) {
		salary, err := dir.FindEmployeeSalary(ctx, "DEPT-01", "EMP-01", "2026-03")
		require.NoError(t, err)
		assert.Equal(t, "50000", salary.NetPay.String())
	})

	t.Run("missing payroll line", func(t *testing.T) {
		_, err := dir.FindEmployeeSalary(ctx, "DEPT-01", "EMP-01", "2026-04")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
