package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/cache"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/validation"
)

type CreateAddonInput struct {
	Name      string `json:"name"`
	ProductID uint   `json:"product_id"`
}

type UpdateAddonInput struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ProductID uint   `json:"product_id"`
}

type AddonService interface {
	GetAll(ctx context.Context) ([]*types.AddonDetailDTO, error)
	GetByID(ctx context.Context, addonID uint) (*types.AddonDetailDTO, error)
	Create(ctx context.Context, input CreateAddonInput) (*types.AddonDetailDTO, error)
	Update(ctx context.Context, input UpdateAddonInput) (*types.AddonDetailDTO, error)
	Delete(ctx context.Context, addonID uint) (*types.AddonDetailDTO, error)
}

type addonService struct {
	db           *gorm.DB
	log          *logger.Logger
	addonRepo    repos.AddonRepo
	productRepo  repos.ProductRepo
	productCache *cache.ProductCache
}

func NewAddonService(db *gorm.DB, log *logger.Logger, addonRepo repos.AddonRepo, productRepo repos.ProductRepo, productCache *cache.ProductCache) AddonService {
	serviceLog := log.With("service", "AddonService")
	return &addonService{
		db:           db,
		log:          serviceLog,
		addonRepo:    addonRepo,
		productRepo:  productRepo,
		productCache: productCache,
	}
}

func (as *addonService) GetAll(ctx context.Context) ([]*types.AddonDetailDTO, error) {
	const op = "AddonService.GetAll"

	addons, err := as.addonRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	dtos := make([]*types.AddonDetailDTO, 0, len(addons))
	for _, addon := range addons {
		dtos = append(dtos, types.NewAddonDetailDTO(addon))
	}
	return dtos, nil
}

func (as *addonService) GetByID(ctx context.Context, addonID uint) (*types.AddonDetailDTO, error) {
	const op = "AddonService.GetByID"

	addon, err := as.addonRepo.GetByID(ctx, nil, addonID)
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	if addon == nil {
		return nil, apperrors.NewNotFound(op, apperrors.KindAddon, fmt.Sprintf("Addon not found with Id: %d", addonID))
	}
	return types.NewAddonDetailDTO(addon), nil
}

// Create resolves the parent product up front and rejects a name collision
// under it; the composite unique index backs the check against races.
func (as *addonService) Create(ctx context.Context, input CreateAddonInput) (*types.AddonDetailDTO, error) {
	const op = "AddonService.Create"

	if err := validation.AddonName(op, input.Name); err != nil {
		as.log.Warn("Addon validation failed", "error", err)
		return nil, err
	}

	var result *types.Addon
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := as.productRepo.GetByID(ctx, tx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			as.log.Warn("Product not found", "product_id", input.ProductID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", input.ProductID))
		}

		exists, err := as.addonRepo.NameExists(ctx, tx, product.ID, input.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			as.log.Warn("Addon name already exists", "addon_name", input.Name, "product_id", product.ID)
			return apperrors.NewConflict(op, apperrors.KindDuplicateAddonName, fmt.Sprintf("Addon with name '%s' already exists", input.Name))
		}

		addon := &types.Addon{Name: input.Name, ProductID: product.ID}
		if _, err := as.addonRepo.Create(ctx, tx, addon); err != nil {
			return err
		}
		result = addon
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	as.productCache.Invalidate(ctx)
	as.log.Info("Created an addon", "addon_id", result.ID, "product_id", result.ProductID)
	return types.NewAddonDetailDTO(result), nil
}

func (as *addonService) Update(ctx context.Context, input UpdateAddonInput) (*types.AddonDetailDTO, error) {
	const op = "AddonService.Update"

	if err := validation.AddonName(op, input.Name); err != nil {
		as.log.Warn("Addon validation failed", "error", err)
		return nil, err
	}

	var result *types.Addon
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addon, err := as.addonRepo.GetByID(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if addon == nil {
			as.log.Warn("Addon not found", "addon_id", input.ID)
			return apperrors.NewNotFound(op, apperrors.KindAddon, fmt.Sprintf("Addon not found with Id: %d", input.ID))
		}

		product, err := as.productRepo.GetByID(ctx, tx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			as.log.Warn("Product not found", "product_id", input.ProductID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", input.ProductID))
		}

		exists, err := as.addonRepo.NameExists(ctx, tx, product.ID, input.Name, addon.ID)
		if err != nil {
			return err
		}
		if exists {
			as.log.Warn("Addon name already exists", "addon_name", input.Name, "product_id", product.ID)
			return apperrors.NewConflict(op, apperrors.KindDuplicateAddonName, fmt.Sprintf("Addon with name '%s' already exists", input.Name))
		}

		addon.Name = input.Name
		addon.ProductID = product.ID
		if _, err := as.addonRepo.Save(ctx, tx, addon); err != nil {
			return err
		}
		result = addon
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	as.productCache.Invalidate(ctx)
	as.log.Info("Updated an addon", "addon_id", input.ID)
	return types.NewAddonDetailDTO(result), nil
}

func (as *addonService) Delete(ctx context.Context, addonID uint) (*types.AddonDetailDTO, error) {
	const op = "AddonService.Delete"

	var result *types.Addon
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addon, err := as.addonRepo.GetByID(ctx, tx, addonID)
		if err != nil {
			return err
		}
		if addon == nil {
			as.log.Warn("Addon not found", "addon_id", addonID)
			return apperrors.NewNotFound(op, apperrors.KindAddon, fmt.Sprintf("Addon not found with Id: %d", addonID))
		}

		result = addon
		return as.addonRepo.Delete(ctx, tx, addonID)
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	as.productCache.Invalidate(ctx)
	as.log.Info("Deleted an addon", "addon_id", addonID)
	return types.NewAddonDetailDTO(result), nil
}
