package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByPaymentID finds a payment record by its display code
func (r *GormPaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	return r.findOne(r.db.WithContext(ctx), paymentID)
}

// FindByPaymentIDForUpdate finds a payment record and holds a row lock on it
func (r *GormPaymentRepository) FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*payment.Payment, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), paymentID)
}

func (r *GormPaymentRepository) findOne(db *gorm.DB, paymentID string) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := db.Where("payment_id = ?", paymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(p)).Error
}

var _ payment.Repository = (*GormPaymentRepository)(nil)
