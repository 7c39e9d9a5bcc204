package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yungbote/catalog-backend/internal/apperrors"
)

func TestProductCreateValidatesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.products.Create(ctx, CreateProductInput{Name: "", Description: "desc"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("empty name: want validation got %v", err)
	}

	_, err = env.products.Create(ctx, CreateProductInput{Name: "Laptop", Description: "   "})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("blank description: want validation got %v", err)
	}
}

func TestProductValueRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createProduct(t, "Laptop", "15-inch", "999.99")

	loaded, err := env.products.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want := decimal.RequireFromString("999.99")
	if !loaded.Value.Equal(want) {
		t.Fatalf("value: want=%s got=%s", want, loaded.Value)
	}
}

func TestProductUpdateRejectsMissingProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.products.Update(context.Background(), UpdateProductInput{
		ID:          4242,
		Name:        "Laptop",
		Description: "15-inch",
	})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("update missing: want not_found got %v", err)
	}
}

func TestProductDeleteCascadesAddonsAndLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	if _, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "Warranty"}, {Name: "Dock"}}); err != nil {
		t.Fatalf("AddAddons: %v", err)
	}
	account := env.createAccount(t, "Acme")
	if _, err := env.subscriptions.Subscribe(ctx, account.ID, product.ID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	addons, err := env.addons.GetAll(ctx)
	if err != nil {
		t.Fatalf("addons.GetAll: %v", err)
	}
	if len(addons) != 2 {
		t.Fatalf("addon count before delete: want=2 got=%d", len(addons))
	}

	if _, err := env.products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("products.Delete: %v", err)
	}

	if got := env.countAddons(t, product.ID); got != 0 {
		t.Fatalf("addons after delete: want=0 got=%d", got)
	}
	if got := env.countLinks(t, account.ID, product.ID); got != 0 {
		t.Fatalf("links after delete: want=0 got=%d", got)
	}
	for _, addon := range addons {
		if _, err := env.addons.GetByID(ctx, addon.ID); !apperrors.IsCode(err, apperrors.CodeNotFound) {
			t.Fatalf("addon %d after cascade: want not_found got %v", addon.ID, err)
		}
	}

	// The account itself is untouched.
	if _, err := env.accounts.GetByID(ctx, account.ID); err != nil {
		t.Fatalf("account after product delete: %v", err)
	}
}

func TestAddAddonsBatchHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	updated, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "Warranty"}, {Name: "Dock"}, {Name: "Sleeve"}})
	if err != nil {
		t.Fatalf("AddAddons: %v", err)
	}
	if got := len(updated.Addons); got != 3 {
		t.Fatalf("addon count: want=3 got=%d", got)
	}
}

func TestAddAddonsRejectsIntraBatchDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	_, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "Warranty"}, {Name: "Warranty"}})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("intra-batch duplicate: want conflict got %v", err)
	}
	if got := apperrors.KindOf(err); got != apperrors.KindDuplicateAddonName {
		t.Fatalf("kind: want=%q got=%q", apperrors.KindDuplicateAddonName, got)
	}
	// The whole batch aborts, including the valid first entry.
	if got := env.countAddons(t, product.ID); got != 0 {
		t.Fatalf("addons after aborted batch: want=0 got=%d", got)
	}
}

func TestAddAddonsRejectsCollisionWithExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	if _, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "Warranty"}}); err != nil {
		t.Fatalf("first batch: %v", err)
	}

	_, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "Dock"}, {Name: "Warranty"}})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("collision with existing: want conflict got %v", err)
	}
	if got := env.countAddons(t, product.ID); got != 1 {
		t.Fatalf("addons after aborted batch: want=1 got=%d", got)
	}
}

func TestAddAddonsRejectsBlankNameAndMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	_, err := env.products.AddAddons(ctx, product.ID, []AddonSpec{{Name: "  "}})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("blank addon name: want validation got %v", err)
	}

	_, err = env.products.AddAddons(ctx, 4242, []AddonSpec{{Name: "Warranty"}})
	if got := apperrors.KindOf(err); got != apperrors.KindProduct {
		t.Fatalf("missing product kind: want=%q got=%q (%v)", apperrors.KindProduct, got, err)
	}
}

func TestProductGetAllIsOrderedByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createProduct(t, "Laptop", "15-inch", "999.99")
	env.createProduct(t, "Phone", "6-inch", "499.00")
	env.createProduct(t, "Tablet", "10-inch", "299.00")

	products, err := env.products.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("product count: want=3 got=%d", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].ID >= products[i].ID {
			t.Fatalf("products not ordered by id: %d before %d", products[i-1].ID, products[i].ID)
		}
	}
}
