package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/db"
	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

type testEnv struct {
	db            *gorm.DB
	accountRepo   repos.AccountRepo
	userRepo      repos.UserRepo
	productRepo   repos.ProductRepo
	addonRepo     repos.AddonRepo
	linkRepo      repos.AccountProductRepo
	accounts      AccountService
	users         UserService
	products      ProductService
	addons        AddonService
	subscriptions SubscriptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	sqliteService, err := db.NewSQLiteService(":memory:", log)
	if err != nil {
		t.Fatalf("NewSQLiteService: %v", err)
	}
	gdb := sqliteService.DB()
	// One connection keeps every session on the same in-memory database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqliteService.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	accountRepo := repos.NewAccountRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)
	productRepo := repos.NewProductRepo(gdb, log)
	addonRepo := repos.NewAddonRepo(gdb, log)
	linkRepo := repos.NewAccountProductRepo(gdb, log)

	cascade := NewCascadeService(log, accountRepo, userRepo, productRepo, addonRepo, linkRepo)

	return &testEnv{
		db:            gdb,
		accountRepo:   accountRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		addonRepo:     addonRepo,
		linkRepo:      linkRepo,
		accounts:      NewAccountService(gdb, log, accountRepo, cascade),
		users:         NewUserService(gdb, log, userRepo, accountRepo, cascade),
		products:      NewProductService(gdb, log, productRepo, addonRepo, cascade, nil),
		addons:        NewAddonService(gdb, log, addonRepo, productRepo, nil),
		subscriptions: NewSubscriptionService(gdb, log, accountRepo, productRepo, linkRepo),
	}
}

func (env *testEnv) createProduct(t *testing.T, name, description, value string) *types.ProductDTO {
	t.Helper()
	v, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q): %v", value, err)
	}
	product, err := env.products.Create(context.Background(), CreateProductInput{
		Name:        name,
		Description: description,
		Value:       v,
	})
	if err != nil {
		t.Fatalf("products.Create(%q): %v", name, err)
	}
	return product
}

func (env *testEnv) createAccount(t *testing.T, displayName string) *types.AccountDTO {
	t.Helper()
	account, err := env.accounts.Create(context.Background(), CreateAccountInput{DisplayName: displayName})
	if err != nil {
		t.Fatalf("accounts.Create(%q): %v", displayName, err)
	}
	return account
}

func (env *testEnv) createUser(t *testing.T, username, password, displayName string) *types.UserDTO {
	t.Helper()
	user, err := env.users.Create(context.Background(), CreateUserInput{
		Username:           username,
		Password:           password,
		AccountDisplayName: displayName,
	})
	if err != nil {
		t.Fatalf("users.Create(%q): %v", username, err)
	}
	return user
}

func (env *testEnv) countLinks(t *testing.T, accountID, productID uint) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(&types.AccountProduct{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Count(&count).Error; err != nil {
		t.Fatalf("counting links: %v", err)
	}
	return count
}

func (env *testEnv) countAddons(t *testing.T, productID uint) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(&types.Addon{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		t.Fatalf("counting addons: %v", err)
	}
	return count
}
