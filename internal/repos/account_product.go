package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

type AccountProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.AccountProduct) (*types.AccountProduct, error)
	Get(ctx context.Context, tx *gorm.DB, accountID, productID uint) (*types.AccountProduct, error)
	Delete(ctx context.Context, tx *gorm.DB, accountID, productID uint) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uint) error
	DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uint) error
}

type accountProductRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountProductRepo(db *gorm.DB, baseLog *logger.Logger) AccountProductRepo {
	repoLog := baseLog.With("repo", "AccountProductRepo")
	return &accountProductRepo{db: db, log: repoLog}
}

func (apr *accountProductRepo) Create(ctx context.Context, tx *gorm.DB, link *types.AccountProduct) (*types.AccountProduct, error) {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	if err := transaction.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (apr *accountProductRepo) Get(ctx context.Context, tx *gorm.DB, accountID, productID uint) (*types.AccountProduct, error) {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	var result types.AccountProduct
	if err := transaction.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (apr *accountProductRepo) Delete(ctx context.Context, tx *gorm.DB, accountID, productID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&types.AccountProduct{}).Error
}

func (apr *accountProductRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.AccountProduct{}).Error
}

func (apr *accountProductRepo) DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.AccountProduct{}).Error
}
