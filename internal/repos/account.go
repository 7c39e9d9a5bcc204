package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

// accountGraph is the preload chain for the full subscription graph:
// join rows, their products and each product's addons.
const accountGraph = "Products.Product.Addons"

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error)
	GetByID(ctx context.Context, tx *gorm.DB, accountID uint) (*types.Account, error)
	GetByIDWithGraph(ctx context.Context, tx *gorm.DB, accountID uint) (*types.Account, error)
	GetAllWithGraph(ctx context.Context, tx *gorm.DB) ([]*types.Account, error)
	Save(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error)
	Delete(ctx context.Context, tx *gorm.DB, accountID uint) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func (ar *accountRepo) Create(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (ar *accountRepo) GetByID(ctx context.Context, tx *gorm.DB, accountID uint) (*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Account
	if err := transaction.WithContext(ctx).
		First(&result, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ar *accountRepo) GetByIDWithGraph(ctx context.Context, tx *gorm.DB, accountID uint) (*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Account
	if err := transaction.WithContext(ctx).
		Preload(accountGraph).
		First(&result, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ar *accountRepo) GetAllWithGraph(ctx context.Context, tx *gorm.DB) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Account
	if err := transaction.WithContext(ctx).
		Preload(accountGraph).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) Save(ctx context.Context, tx *gorm.DB, account *types.Account) (*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Omit(clause.Associations).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (ar *accountRepo) Delete(ctx context.Context, tx *gorm.DB, accountID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Account{}, accountID).Error
}
