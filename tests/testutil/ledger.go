package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/bizops/ledger/internal/infrastructure/persistence"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestActor is the user the seeded records are attributed to
const TestActor = "tester"

// Ledger is a migrated database with its transaction scope
type Ledger struct {
	DB    *gorm.DB
	Scope scope.TransactionScope
	Repos scope.Repositories
}

// NewLedger creates an empty ledger database
func NewLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedgerWithDB(NewSQLiteDB(t))
}

// NewLedgerWithDB wraps an already migrated database
func NewLedgerWithDB(db *gorm.DB) *Ledger {
	return &Ledger{
		DB:    db,
		Scope: persistence.NewGormTransactionScope(db),
		Repos: persistence.NewRepositories(db),
	}
}

func (l *Ledger) create(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, l.DB.Create(v).Error)
}

// SeedVendor adds a vendor to the directory
func (l *Ledger) SeedVendor(t *testing.T, vendorID string) {
	t.Helper()
	l.create(t, &models.VendorModel{VendorID: vendorID, Name: "Vendor " + vendorID})
}

// SeedCustomer adds a customer to the directory
func (l *Ledger) SeedCustomer(t *testing.T, customerID string) {
	t.Helper()
	l.create(t, &models.CustomerModel{CustomerID: customerID, Name: "Customer " + customerID})
}

// SeedDepartment adds a department to the directory
func (l *Ledger) SeedDepartment(t *testing.T, departmentID string) {
	t.Helper()
	l.create(t, &models.DepartmentModel{DepartmentID: departmentID, Name: "Department " + departmentID})
}

// SeedEmployee adds an employee of departmentID
func (l *Ledger) SeedEmployee(t *testing.T, departmentID, employeeID string) {
	t.Helper()
	l.create(t, &models.EmployeeModel{EmployeeID: employeeID, DepartmentID: departmentID, Name: "Employee " + employeeID})
}

// SeedAccount adds a financial account
func (l *Ledger) SeedAccount(t *testing.T, accountID string) {
	t.Helper()
	l.create(t, &models.AccountModel{AccountID: accountID, Name: "Account " + accountID})
}

// SeedSalary adds a payroll line
func (l *Ledger) SeedSalary(t *testing.T, departmentID, employeeID, payMonth string, netPay decimal.Decimal) {
	t.Helper()
	l.create(t, &models.EmployeeSalaryModel{
		DepartmentID: departmentID,
		EmployeeID:   employeeID,
		PayMonth:     payMonth,
		NetPay:       netPay,
	})
}

// SeedApproval stores an approval of category, approved unless pending is set
func (l *Ledger) SeedApproval(t *testing.T, approvalID string, category approval.Category, approved bool) *approval.Approval {
	t.Helper()
	a, err := approval.NewApproval(approvalID, category, "seeded", nil, nil, TestActor)
	require.NoError(t, err)
	if approved {
		require.NoError(t, a.Approve("manager", "", time.Now()))
	}
	a.ClearDomainEvents()
	require.NoError(t, l.Repos.Approvals().Save(context.Background(), a))
	return a
}

// SeedPayment stores a local-currency payment record
func (l *Ledger) SeedPayment(t *testing.T, paymentID string, direction payment.Direction, counterpartyID string, amount decimal.Decimal) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(paymentID, payment.Request{
		Direction:      direction,
		CounterpartyID: counterpartyID,
		Amount:         amount,
		Currency:       valueobject.DefaultCurrency,
		ExchangeRate:   decimal.NewFromInt(1),
	}, TestActor)
	require.NoError(t, err)
	require.NoError(t, l.Repos.Payments().Save(context.Background(), p))
	return p
}

// SeedLiability stores a liability
func (l *Ledger) SeedLiability(t *testing.T, liabilityID string, terms liability.Terms) *liability.Liability {
	t.Helper()
	li, err := liability.NewLiability(liabilityID, terms, TestActor)
	require.NoError(t, err)
	li.ClearDomainEvents()
	require.NoError(t, l.Repos.Liabilities().Save(context.Background(), li))
	return li
}

// SeedAsset stores an Active, unassigned asset bought for cost
func (l *Ledger) SeedAsset(t *testing.T, assetID string, cost decimal.Decimal) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(assetID, asset.Source{
		Name:                  "Seeded " + assetID,
		Type:                  asset.TypeITEquipment,
		Subtype:               "Laptop",
		UnitCost:              cost,
		PurchaseDate:          Date(2024, time.January, 1),
		VendorID:              "V-1",
		PurchaseTransactionID: "PUR_TXN-00000",
		ReferenceID:           "REF-" + assetID,
	}, TestActor)
	require.NoError(t, err)
	a.ClearDomainEvents()
	require.NoError(t, l.Repos.Assets().Save(context.Background(), a))
	return a
}

// Asset reloads an asset
func (l *Ledger) Asset(t *testing.T, assetID string) *asset.Asset {
	t.Helper()
	a, err := l.Repos.Assets().FindByAssetID(context.Background(), assetID)
	require.NoError(t, err)
	return a
}

// Payment reloads a payment record
func (l *Ledger) Payment(t *testing.T, paymentID string) *payment.Payment {
	t.Helper()
	p, err := l.Repos.Payments().FindByPaymentID(context.Background(), paymentID)
	require.NoError(t, err)
	return p
}

// Liability reloads a liability
func (l *Ledger) Liability(t *testing.T, liabilityID string) *liability.Liability {
	t.Helper()
	li, err := l.Repos.Liabilities().FindByLiabilityID(context.Background(), liabilityID)
	require.NoError(t, err)
	return li
}

// CounterValue returns the current value of a sequence counter, 0 if unused
func (l *Ledger) CounterValue(t *testing.T, name string) int64 {
	t.Helper()
	var row models.CounterModel
	err := l.DB.Where("name = ?", name).Limit(1).Find(&row).Error
	require.NoError(t, err)
	return row.Seq
}
