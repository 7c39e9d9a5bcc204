package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, productID uint) (*types.Product, error)
	GetByIDWithAddons(ctx context.Context, tx *gorm.DB, productID uint) (*types.Product, error)
	GetAllWithAddons(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
	Save(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	Delete(ctx context.Context, tx *gorm.DB, productID uint) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, productID uint) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Product
	if err := transaction.WithContext(ctx).
		First(&result, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) GetByIDWithAddons(ctx context.Context, tx *gorm.DB, productID uint) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Product
	if err := transaction.WithContext(ctx).
		Preload("Addons").
		First(&result, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) GetAllWithAddons(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Preload("Addons").
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) Save(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Product{}, productID).Error
}
