package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormApprovalRepository implements approval.Repository using GORM
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GormApprovalRepository
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// FindByApprovalID finds an approval by its display code
func (r *GormApprovalRepository) FindByApprovalID(ctx context.Context, approvalID string) (*approval.Approval, error) {
	var model models.ApprovalModel
	if err := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an approval
func (r *GormApprovalRepository) Save(ctx context.Context, a *approval.Approval) error {
	return r.db.WithContext(ctx).Save(models.ApprovalModelFromDomain(a)).Error
}

var _ approval.Repository = (*GormApprovalRepository)(nil)
