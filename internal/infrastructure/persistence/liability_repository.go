package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLiabilityRepository implements liability.Repository using GORM
type GormLiabilityRepository struct {
	db *gorm.DB
}

// NewGormLiabilityRepository creates a new GormLiabilityRepository
func NewGormLiabilityRepository(db *gorm.DB) *GormLiabilityRepository {
	return &GormLiabilityRepository{db: db}
}

// FindByLiabilityID finds a liability by its display code
func (r *GormLiabilityRepository) FindByLiabilityID(ctx context.Context, liabilityID string) (*liability.Liability, error) {
	return r.findOne(r.db.WithContext(ctx), liabilityID)
}

// FindByLiabilityIDForUpdate finds a liability and holds a row lock on it
func (r *GormLiabilityRepository) FindByLiabilityIDForUpdate(ctx context.Context, liabilityID string) (*liability.Liability, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), liabilityID)
}

func (r *GormLiabilityRepository) findOne(db *gorm.DB, liabilityID string) (*liability.Liability, error) {
	var model models.LiabilityModel
	if err := db.Where("liability_id = ?", liabilityID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds liabilities matching the filter and the total before paging
func (r *GormLiabilityRepository) FindAll(ctx context.Context, filter liability.Filter) ([]liability.Liability, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LiabilityModel{})
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR liability_id LIKE ?", like, like)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.LiabilityModel
	if err := paginate(query, filter.Filter, LiabilitySortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]liability.Liability, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a liability
func (r *GormLiabilityRepository) Save(ctx context.Context, l *liability.Liability) error {
	return r.db.WithContext(ctx).Save(models.LiabilityModelFromDomain(l)).Error
}

var _ liability.Repository = (*GormLiabilityRepository)(nil)
