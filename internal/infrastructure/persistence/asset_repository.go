package persistence

import (
	"context"
	"errors"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssetRepository implements asset.Repository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// withChildren preloads maintenance windows and depreciation entries in
// the order they were appended
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Maintenance", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, maintenance_id ASC")
		}).
		Preload("Depreciation", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, depreciation_id ASC")
		})
}

// FindByAssetID finds an asset by its display code
func (r *GormAssetRepository) FindByAssetID(ctx context.Context, assetID string) (*asset.Asset, error) {
	return r.findOne(r.db.WithContext(ctx), assetID)
}

// FindByAssetIDForUpdate finds an asset and holds a row lock on it
func (r *GormAssetRepository) FindByAssetIDForUpdate(ctx context.Context, assetID string) (*asset.Asset, error) {
	return r.findOne(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), assetID)
}

func (r *GormAssetRepository) findOne(db *gorm.DB, assetID string) (*asset.Asset, error) {
	var model models.AssetModel
	if err := withChildren(db).Where("asset_id = ?", assetID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds assets matching the filter and the total before paging
func (r *GormAssetRepository) FindAll(ctx context.Context, filter asset.Filter) ([]asset.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AssetModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Assignment != nil {
		query = query.Where("assignment_status = ?", *filter.Assignment)
	}
	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ReferenceID != "" {
		query = query.Where("reference_id = ?", filter.ReferenceID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR asset_id LIKE ?", like, like)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AssetModel
	if err := withChildren(paginate(query, filter.Filter, AssetSortFields, "created_at")).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	assets := make([]asset.Asset, len(rows))
	for i := range rows {
		a, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		assets[i] = *a
	}
	return assets, total, nil
}

// ExistsByReference checks whether any asset was created for a purchase reference
func (r *GormAssetRepository) ExistsByReference(ctx context.Context, referenceID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AssetModel{}).
		Where("reference_id = ?", referenceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an asset. Sub-records are append-only, so each
// child row is upserted by its own key.
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	model := models.AssetModelFromDomain(a)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return err
	}
	for i := range model.Maintenance {
		if err := db.Save(&model.Maintenance[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.Depreciation {
		if err := db.Save(&model.Depreciation[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveBatch creates several new assets in one insert
func (r *GormAssetRepository) SaveBatch(ctx context.Context, assets []*asset.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	rows := make([]*models.AssetModel, len(assets))
	for i, a := range assets {
		rows[i] = models.AssetModelFromDomain(a)
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(rows, 100).Error
}

var _ asset.Repository = (*GormAssetRepository)(nil)
