package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

// CascadeService removes dependent rows when an owning entity is deleted.
// Every method runs inside the caller's transaction and deletes children
// before the parent row, so a partial cascade is never committed.
type CascadeService interface {
	OnProductDeleted(ctx context.Context, tx *gorm.DB, product *types.Product) error
	OnAccountDeleted(ctx context.Context, tx *gorm.DB, account *types.Account) error
	OnUserDeleted(ctx context.Context, tx *gorm.DB, user *types.User) error
}

type cascadeService struct {
	log                *logger.Logger
	accountRepo        repos.AccountRepo
	userRepo           repos.UserRepo
	productRepo        repos.ProductRepo
	addonRepo          repos.AddonRepo
	accountProductRepo repos.AccountProductRepo
}

func NewCascadeService(log *logger.Logger, accountRepo repos.AccountRepo, userRepo repos.UserRepo, productRepo repos.ProductRepo, addonRepo repos.AddonRepo, accountProductRepo repos.AccountProductRepo) CascadeService {
	serviceLog := log.With("service", "CascadeService")
	return &cascadeService{
		log:                serviceLog,
		accountRepo:        accountRepo,
		userRepo:           userRepo,
		productRepo:        productRepo,
		addonRepo:          addonRepo,
		accountProductRepo: accountProductRepo,
	}
}

func (cs *cascadeService) OnProductDeleted(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	if err := cs.addonRepo.DeleteByProductID(ctx, tx, product.ID); err != nil {
		return err
	}
	if err := cs.accountProductRepo.DeleteByProductID(ctx, tx, product.ID); err != nil {
		return err
	}
	if err := cs.productRepo.Delete(ctx, tx, product.ID); err != nil {
		return err
	}
	cs.log.Info("Cascaded product deletion", "product_id", product.ID)
	return nil
}

// OnAccountDeleted also removes the owned user row: account and user are a
// lifecycle-coupled pair, whichever side the deletion starts from.
func (cs *cascadeService) OnAccountDeleted(ctx context.Context, tx *gorm.DB, account *types.Account) error {
	if err := cs.accountProductRepo.DeleteByAccountID(ctx, tx, account.ID); err != nil {
		return err
	}
	if err := cs.userRepo.DeleteByAccountID(ctx, tx, account.ID); err != nil {
		return err
	}
	if err := cs.accountRepo.Delete(ctx, tx, account.ID); err != nil {
		return err
	}
	cs.log.Info("Cascaded account deletion", "account_id", account.ID)
	return nil
}

func (cs *cascadeService) OnUserDeleted(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if user.Account != nil {
		return cs.OnAccountDeleted(ctx, tx, user.Account)
	}
	if err := cs.userRepo.Delete(ctx, tx, user.ID); err != nil {
		return err
	}
	cs.log.Info("Deleted user without owned account", "user_id", user.ID)
	return nil
}
