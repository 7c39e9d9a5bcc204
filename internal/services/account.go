package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/validation"
)

type CreateAccountInput struct {
	DisplayName string `json:"display_name"`
}

type UpdateAccountInput struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
}

type AccountService interface {
	GetAll(ctx context.Context) ([]*types.AccountDTO, error)
	GetByID(ctx context.Context, accountID uint) (*types.AccountDTO, error)
	Create(ctx context.Context, input CreateAccountInput) (*types.AccountDTO, error)
	Update(ctx context.Context, input UpdateAccountInput) (*types.AccountDTO, error)
	Delete(ctx context.Context, accountID uint) (*types.AccountDTO, error)
}

type accountService struct {
	db          *gorm.DB
	log         *logger.Logger
	accountRepo repos.AccountRepo
	cascade     CascadeService
}

func NewAccountService(db *gorm.DB, log *logger.Logger, accountRepo repos.AccountRepo, cascade CascadeService) AccountService {
	serviceLog := log.With("service", "AccountService")
	return &accountService{
		db:          db,
		log:         serviceLog,
		accountRepo: accountRepo,
		cascade:     cascade,
	}
}

func (as *accountService) GetAll(ctx context.Context) ([]*types.AccountDTO, error) {
	const op = "AccountService.GetAll"

	accounts, err := as.accountRepo.GetAllWithGraph(ctx, nil)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	dtos := make([]*types.AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		dtos = append(dtos, types.NewAccountDTO(account))
	}
	return dtos, nil
}

func (as *accountService) GetByID(ctx context.Context, accountID uint) (*types.AccountDTO, error) {
	const op = "AccountService.GetByID"

	account, err := as.accountRepo.GetByIDWithGraph(ctx, nil, accountID)
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	if account == nil {
		return nil, apperrors.NewNotFound(op, apperrors.KindAccount, fmt.Sprintf("Account not found with Id: %d", accountID))
	}
	return types.NewAccountDTO(account), nil
}

func (as *accountService) Create(ctx context.Context, input CreateAccountInput) (*types.AccountDTO, error) {
	const op = "AccountService.Create"

	if err := validation.AccountDisplayName(op, "DisplayName", input.DisplayName); err != nil {
		as.log.Warn("Account validation failed", "error", err)
		return nil, err
	}

	account := &types.Account{DisplayName: input.DisplayName}
	if _, err := as.accountRepo.Create(ctx, nil, account); err != nil {
		return nil, wrapStorage(op, err)
	}

	as.log.Info("Created an account", "account_id", account.ID)
	return types.NewAccountDTO(account), nil
}

func (as *accountService) Update(ctx context.Context, input UpdateAccountInput) (*types.AccountDTO, error) {
	const op = "AccountService.Update"

	if err := validation.AccountDisplayName(op, "DisplayName", input.DisplayName); err != nil {
		as.log.Warn("Account validation failed", "error", err)
		return nil, err
	}

	var result *types.Account
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := as.accountRepo.GetByIDWithGraph(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if account == nil {
			as.log.Warn("Account not found", "account_id", input.ID)
			return apperrors.NewNotFound(op, apperrors.KindAccount, fmt.Sprintf("Account not found with Id: %d", input.ID))
		}

		account.DisplayName = input.DisplayName
		if _, err := as.accountRepo.Save(ctx, tx, account); err != nil {
			return err
		}
		result = account
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	as.log.Info("Updated an account", "account_id", input.ID)
	return types.NewAccountDTO(result), nil
}

func (as *accountService) Delete(ctx context.Context, accountID uint) (*types.AccountDTO, error) {
	const op = "AccountService.Delete"

	var result *types.Account
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := as.accountRepo.GetByIDWithGraph(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			as.log.Warn("Account not found", "account_id", accountID)
			return apperrors.NewNotFound(op, apperrors.KindAccount, fmt.Sprintf("Account not found with Id: %d", accountID))
		}

		result = account
		return as.cascade.OnAccountDeleted(ctx, tx, account)
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	as.log.Info("Deleted an account", "account_id", accountID)
	return types.NewAccountDTO(result), nil
}
