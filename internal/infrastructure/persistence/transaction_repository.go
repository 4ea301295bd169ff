package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/transaction"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements transaction.Repository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByTransactionID finds a transaction of the given kind by its display code
func (r *GormTransactionRepository) FindByTransactionID(ctx context.Context, kind transaction.Kind, transactionID string) (*transaction.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND transaction_id = ?", kind, transactionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds transactions of one kind matching the filter and the total before paging
func (r *GormTransactionRepository) FindAll(ctx context.Context, kind transaction.Kind, filter transaction.Filter) ([]transaction.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Where("kind = ?", kind)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ReferenceType != nil {
		query = query.Where("reference_type = ?", *filter.ReferenceType)
	}
	if filter.CounterpartyID != "" {
		query = query.Where("counterparty_id = ?", filter.CounterpartyID)
	}
	if filter.ApprovalID != "" {
		query = query.Where("approval_id = ?", filter.ApprovalID)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("narration LIKE ? OR transaction_id LIKE ?", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TransactionModel
	if err := paginate(query, filter.Filter, TransactionSortFields, "date").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]transaction.Transaction, 0, len(rows))
	for i := range rows {
		t, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, t *transaction.Transaction) error {
	model, err := models.TransactionModelFromDomain(t)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

var _ transaction.Repository = (*GormTransactionRepository)(nil)
