package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

type AddonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, addon *types.Addon) (*types.Addon, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, addons []*types.Addon) ([]*types.Addon, error)
	GetByID(ctx context.Context, tx *gorm.DB, addonID uint) (*types.Addon, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Addon, error)
	NameExists(ctx context.Context, tx *gorm.DB, productID uint, name string, excludeAddonID uint) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, addon *types.Addon) (*types.Addon, error)
	Delete(ctx context.Context, tx *gorm.DB, addonID uint) error
	DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uint) error
}

type addonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddonRepo(db *gorm.DB, baseLog *logger.Logger) AddonRepo {
	repoLog := baseLog.With("repo", "AddonRepo")
	return &addonRepo{db: db, log: repoLog}
}

func (ar *addonRepo) Create(ctx context.Context, tx *gorm.DB, addon *types.Addon) (*types.Addon, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(addon).Error; err != nil {
		return nil, err
	}
	return addon, nil
}

func (ar *addonRepo) CreateBatch(ctx context.Context, tx *gorm.DB, addons []*types.Addon) ([]*types.Addon, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(addons) == 0 {
		return []*types.Addon{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

func (ar *addonRepo) GetByID(ctx context.Context, tx *gorm.DB, addonID uint) (*types.Addon, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Addon
	if err := transaction.WithContext(ctx).
		First(&result, addonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ar *addonRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Addon, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Addon
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *addonRepo) NameExists(ctx context.Context, tx *gorm.DB, productID uint, name string, excludeAddonID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Addon{}).
		Where("product_id = ? AND name = ?", productID, name)
	if excludeAddonID != 0 {
		query = query.Where("id <> ?", excludeAddonID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *addonRepo) Save(ctx context.Context, tx *gorm.DB, addon *types.Addon) (*types.Addon, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Omit(clause.Associations).Save(addon).Error; err != nil {
		return nil, err
	}
	return addon, nil
}

func (ar *addonRepo) Delete(ctx context.Context, tx *gorm.DB, addonID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Addon{}, addonID).Error
}

func (ar *addonRepo) DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.Addon{}).Error
}
