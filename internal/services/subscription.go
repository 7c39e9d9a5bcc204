package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

// SubscriptionService manages the account↔product join records.
type SubscriptionService interface {
	Subscribe(ctx context.Context, accountID, productID uint) (*types.AccountDTO, error)
	Unsubscribe(ctx context.Context, accountID, productID uint) (*types.AccountDTO, error)
}

type subscriptionService struct {
	db                 *gorm.DB
	log                *logger.Logger
	accountRepo        repos.AccountRepo
	productRepo        repos.ProductRepo
	accountProductRepo repos.AccountProductRepo
}

func NewSubscriptionService(db *gorm.DB, log *logger.Logger, accountRepo repos.AccountRepo, productRepo repos.ProductRepo, accountProductRepo repos.AccountProductRepo) SubscriptionService {
	serviceLog := log.With("service", "SubscriptionService")
	return &subscriptionService{
		db:                 db,
		log:                serviceLog,
		accountRepo:        accountRepo,
		productRepo:        productRepo,
		accountProductRepo: accountProductRepo,
	}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, accountID, productID uint) (*types.AccountDTO, error) {
	const op = "SubscriptionService.Subscribe"

	var result *types.Account
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := ss.accountRepo.GetByID(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			ss.log.Warn("Account not found", "account_id", accountID)
			return apperrors.NewNotFound(op, apperrors.KindAccount, fmt.Sprintf("Account not found with Id: %d", accountID))
		}

		product, err := ss.productRepo.GetByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			ss.log.Warn("Product not found", "product_id", productID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", productID))
		}

		existing, err := ss.accountProductRepo.Get(ctx, tx, accountID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			ss.log.Warn("Account already has product", "account_id", accountID, "product_id", productID)
			return apperrors.NewConflict(op, apperrors.KindAlreadySubscribed, fmt.Sprintf("Account %d already has product %d", accountID, productID))
		}

		link := &types.AccountProduct{AccountID: account.ID, ProductID: product.ID}
		if _, err := ss.accountProductRepo.Create(ctx, tx, link); err != nil {
			// A concurrent subscribe for the same pair loses the race
			// against the composite primary key.
			if wrapped := wrapStorage(op, err); apperrors.IsCode(wrapped, apperrors.CodeConflict) {
				return apperrors.NewConflict(op, apperrors.KindAlreadySubscribed, fmt.Sprintf("Account %d already has product %d", accountID, productID))
			}
			return err
		}

		result, err = ss.accountRepo.GetByIDWithGraph(ctx, tx, accountID)
		return err
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	ss.log.Info("Subscribed account to product", "account_id", accountID, "product_id", productID)
	return types.NewAccountDTO(result), nil
}

func (ss *subscriptionService) Unsubscribe(ctx context.Context, accountID, productID uint) (*types.AccountDTO, error) {
	const op = "SubscriptionService.Unsubscribe"

	var result *types.Account
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ss.accountProductRepo.Get(ctx, tx, accountID, productID)
		if err != nil {
			return err
		}
		if existing == nil {
			ss.log.Warn("No relation found", "account_id", accountID, "product_id", productID)
			return apperrors.NewNotFound(op, apperrors.KindAccountProductRelation, fmt.Sprintf("No relation found between account %d and product %d", accountID, productID))
		}

		if err := ss.accountProductRepo.Delete(ctx, tx, accountID, productID); err != nil {
			return err
		}

		result, err = ss.accountRepo.GetByIDWithGraph(ctx, tx, accountID)
		return err
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	if result == nil {
		// The relation existed but its account vanished underneath it;
		// surface the account as missing rather than a nil body.
		return nil, apperrors.NewNotFound(op, apperrors.KindAccount, fmt.Sprintf("Account not found with Id: %d", accountID))
	}

	ss.log.Info("Unsubscribed account from product", "account_id", accountID, "product_id", productID)
	return types.NewAccountDTO(result), nil
}
