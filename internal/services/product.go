package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/cache"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/validation"
)

type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

type UpdateProductInput struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// AddonSpec is one entry of the batch addon payload.
type AddonSpec struct {
	Name string `json:"name"`
}

type ProductService interface {
	GetAll(ctx context.Context) ([]*types.ProductDTO, error)
	GetByID(ctx context.Context, productID uint) (*types.ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*types.ProductDTO, error)
	Update(ctx context.Context, input UpdateProductInput) (*types.ProductDTO, error)
	Delete(ctx context.Context, productID uint) (*types.ProductDTO, error)
	AddAddons(ctx context.Context, productID uint, specs []AddonSpec) (*types.ProductDTO, error)
}

type productService struct {
	db           *gorm.DB
	log          *logger.Logger
	productRepo  repos.ProductRepo
	addonRepo    repos.AddonRepo
	cascade      CascadeService
	productCache *cache.ProductCache
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, addonRepo repos.AddonRepo, cascade CascadeService, productCache *cache.ProductCache) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:           db,
		log:          serviceLog,
		productRepo:  productRepo,
		addonRepo:    addonRepo,
		cascade:      cascade,
		productCache: productCache,
	}
}

func (ps *productService) GetAll(ctx context.Context) ([]*types.ProductDTO, error) {
	const op = "ProductService.GetAll"

	if cached, ok := ps.productCache.Get(ctx); ok {
		return cached, nil
	}

	products, err := ps.productRepo.GetAllWithAddons(ctx, nil)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	dtos := make([]*types.ProductDTO, 0, len(products))
	for _, product := range products {
		dtos = append(dtos, types.NewProductDTO(product))
	}
	ps.productCache.Set(ctx, dtos)
	return dtos, nil
}

func (ps *productService) GetByID(ctx context.Context, productID uint) (*types.ProductDTO, error) {
	const op = "ProductService.GetByID"

	product, err := ps.productRepo.GetByIDWithAddons(ctx, nil, productID)
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	if product == nil {
		return nil, apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", productID))
	}
	return types.NewProductDTO(product), nil
}

func (ps *productService) Create(ctx context.Context, input CreateProductInput) (*types.ProductDTO, error) {
	const op = "ProductService.Create"

	if err := validation.Product(op, input.Name, input.Description); err != nil {
		ps.log.Warn("Product validation failed", "error", err)
		return nil, err
	}

	product := &types.Product{
		Name:        input.Name,
		Description: input.Description,
		Value:       input.Value,
	}
	if _, err := ps.productRepo.Create(ctx, nil, product); err != nil {
		return nil, wrapStorage(op, err)
	}

	ps.productCache.Invalidate(ctx)
	ps.log.Info("Created a product", "product_id", product.ID)
	return types.NewProductDTO(product), nil
}

func (ps *productService) Update(ctx context.Context, input UpdateProductInput) (*types.ProductDTO, error) {
	const op = "ProductService.Update"

	if err := validation.Product(op, input.Name, input.Description); err != nil {
		ps.log.Warn("Product validation failed", "error", err)
		return nil, err
	}

	var result *types.Product
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByIDWithAddons(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if product == nil {
			ps.log.Warn("Product not found", "product_id", input.ID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", input.ID))
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Value = input.Value
		if _, err := ps.productRepo.Save(ctx, tx, product); err != nil {
			return err
		}
		result = product
		return nil
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	ps.productCache.Invalidate(ctx)
	ps.log.Info("Updated a product", "product_id", input.ID)
	return types.NewProductDTO(result), nil
}

func (ps *productService) Delete(ctx context.Context, productID uint) (*types.ProductDTO, error) {
	const op = "ProductService.Delete"

	var result *types.Product
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByIDWithAddons(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			ps.log.Warn("Product not found", "product_id", productID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", productID))
		}

		result = product
		return ps.cascade.OnProductDeleted(ctx, tx, product)
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	ps.productCache.Invalidate(ctx)
	ps.log.Info("Deleted a product", "product_id", productID)
	return types.NewProductDTO(result), nil
}

// AddAddons validates the whole batch against the existing addon set and
// against itself before anything is written; one bad entry aborts all.
func (ps *productService) AddAddons(ctx context.Context, productID uint, specs []AddonSpec) (*types.ProductDTO, error) {
	const op = "ProductService.AddAddons"

	var result *types.Product
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByIDWithAddons(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			ps.log.Warn("Product not found", "product_id", productID)
			return apperrors.NewNotFound(op, apperrors.KindProduct, fmt.Sprintf("Product not found with Id: %d", productID))
		}

		taken := make(map[string]struct{}, len(product.Addons)+len(specs))
		for _, addon := range product.Addons {
			taken[addon.Name] = struct{}{}
		}

		batch := make([]*types.Addon, 0, len(specs))
		for _, spec := range specs {
			if err := validation.AddonName(op, spec.Name); err != nil {
				ps.log.Warn("Addon validation failed", "error", err)
				return err
			}
			if _, exists := taken[spec.Name]; exists {
				ps.log.Warn("Addon name already exists", "addon_name", spec.Name, "product_id", productID)
				return apperrors.NewConflict(op, apperrors.KindDuplicateAddonName, fmt.Sprintf("Addon with name '%s' already exists", spec.Name))
			}
			taken[spec.Name] = struct{}{}
			batch = append(batch, &types.Addon{Name: spec.Name, ProductID: product.ID})
		}

		if _, err := ps.addonRepo.CreateBatch(ctx, tx, batch); err != nil {
			return err
		}

		result, err = ps.productRepo.GetByIDWithAddons(ctx, tx, productID)
		return err
	})
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	ps.productCache.Invalidate(ctx)
	ps.log.Info("Added addons to a product", "product_id", productID, "count", len(specs))
	return types.NewProductDTO(result), nil
}
