package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/validation"
)

type CreateUserInput struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	AccountDisplayName string `json:"account_display_name"`
}

type UpdateUserInput struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserService interface {
	GetAll(ctx context.Context) ([]*types.UserDTO, error)
	GetByID(ctx context.Context, userID uint) (*types.UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*types.UserDTO, error)
	Update(ctx context.Context, input UpdateUserInput) (*types.UserDTO, error)
	Delete(ctx context.Context, userID uint) (*types.UserDTO, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	accountRepo repos.AccountRepo
	cascade     CascadeService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, accountRepo repos.AccountRepo, cascade CascadeService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		cascade:     cascade,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (us *userService) GetAll(ctx context.Context) ([]*types.UserDTO, error) {
	const op = "UserService.GetAll"

	users, err := us.userRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	dtos := make([]*types.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, types.NewUserDTO(user))
	}
	return dtos, nil
}

func (us *userService) GetByID(ctx context.Context, userID uint) (*types.UserDTO, error) {
	const op = "UserService.GetByID"

	user, err := us.userRepo.GetByIDWithGraph(ctx, nil, userID)
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound(op, apperrors.KindUser, fmt.Sprintf("User not found with Id: %d", userID))
	}
	return types.NewUserDTO(user), nil
}

// Create validates username, password and display name in that order, then
// creates the owned account and the user as one unit of work.
func (us *userService) Create(ctx context.Context, input CreateUserInput) (*types.UserDTO, error) {
	const op = "UserService.Create"

	if err := validation.User(op, input.Username, input.Password); err != nil {
		us.log.Warn("User validation failed", "error", err)
		return nil, err
	}
	if err := validation.AccountDisplayName(op, "AccountDisplayName", input.AccountDisplayName); err != nil {
		us.log.Warn("User validation failed", "error", err)
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal(op, err)
	}

	var result *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := &types.Account{DisplayName: input.AccountDisplayName}
		if _, err := us.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		user := &types.User{
			Username:  input.Username,
			Password:  hashed,
			AccountID: account.ID,
		}
		if _, err := us.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		user.Account = account
		result = user
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	us.log.Info("Created a user", "user_id", result.ID, "account_id", result.AccountID)
	return types.NewUserDTO(result), nil
}

func (us *userService) Update(ctx context.Context, input UpdateUserInput) (*types.UserDTO, error) {
	const op = "UserService.Update"

	if err := validation.User(op, input.Username, input.Password); err != nil {
		us.log.Warn("User validation failed", "error", err)
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal(op, err)
	}

	var result *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByIDWithGraph(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if user == nil {
			us.log.Warn("User not found", "user_id", input.ID)
			return apperrors.NewNotFound(op, apperrors.KindUser, fmt.Sprintf("User not found with Id: %d", input.ID))
		}

		user.Username = input.Username
		user.Password = hashed
		if _, err := us.userRepo.Save(ctx, tx, user); err != nil {
			return err
		}
		result = user
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	us.log.Info("Updated a user", "user_id", input.ID)
	return types.NewUserDTO(result), nil
}

// Delete removes the user together with its owned account; the account
// cascade also clears that account's subscription rows.
func (us *userService) Delete(ctx context.Context, userID uint) (*types.UserDTO, error) {
	const op = "UserService.Delete"

	var result *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByIDWithGraph(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			us.log.Warn("User not found", "user_id", userID)
			return apperrors.NewNotFound(op, apperrors.KindUser, fmt.Sprintf("User not found with Id: %d", userID))
		}

		result = user
		return us.cascade.OnUserDeleted(ctx, tx, user)
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	us.log.Info("Deleted a user", "user_id", userID)
	return types.NewUserDTO(result), nil
}
