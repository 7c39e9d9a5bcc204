package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/catalog-backend/internal/apperrors"
	"github.com/yungbote/catalog-backend/internal/types"
)

func TestUserCreateBuildsLifecycleCoupledAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "validName1", "Valid123!", "Acme")
	if user.Account == nil {
		t.Fatalf("created user has no account")
	}
	if user.Account.DisplayName != "Acme" {
		t.Fatalf("account display name: want=Acme got=%q", user.Account.DisplayName)
	}

	if _, err := env.accounts.GetByID(ctx, user.Account.ID); err != nil {
		t.Fatalf("owned account not persisted: %v", err)
	}
}

func TestUserPasswordIsHashedAtRest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createUser(t, "validName1", "Valid123!", "Acme")

	var stored types.User
	if err := env.db.WithContext(ctx).First(&stored, created.ID).Error; err != nil {
		t.Fatalf("loading stored user: %v", err)
	}
	if stored.Password == "Valid123!" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Valid123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserCreateValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Username and password both invalid: the username rule reports first.
	_, err := env.users.Create(ctx, CreateUserInput{Username: "ab", Password: "short", AccountDisplayName: "Acme"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("want validation got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if appErr.Message != "Username length cannot be less than 5" {
		t.Fatalf("first violation: want username rule got %q", appErr.Message)
	}

	// Display name over 20 characters fails after the user rules pass, and
	// the message names the user-create field, not the account one.
	_, err = env.users.Create(ctx, CreateUserInput{Username: "validName1", Password: "Valid123!", AccountDisplayName: "123456789012345678901"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("long display name: want validation got %v", err)
	}
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if appErr.Message != "AccountDisplayName length cannot be more than 20" {
		t.Fatalf("display name violation: got %q", appErr.Message)
	}
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.createUser(t, "validName1", "Valid123!", "Acme")

	updated, err := env.users.Update(ctx, UpdateUserInput{ID: created.ID, Username: "renamedUser", Password: "Other456?"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Username != "renamedUser" {
		t.Fatalf("username: want=renamedUser got=%q", updated.Username)
	}

	var stored types.User
	if err := env.db.WithContext(ctx).First(&stored, created.ID).Error; err != nil {
		t.Fatalf("loading stored user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Other456?")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUserUpdateValidatesBeforeLookup(t *testing.T) {
	env := newTestEnv(t)

	// Invalid payload against a missing id still reports validation first.
	_, err := env.users.Update(context.Background(), UpdateUserInput{ID: 4242, Username: "ab", Password: "Valid123!"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("want validation got %v", err)
	}

	_, err = env.users.Update(context.Background(), UpdateUserInput{ID: 4242, Username: "validName1", Password: "Valid123!"})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("want not_found got %v", err)
	}
}

func TestUserDeleteCascadesOwnedAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "validName1", "Valid123!", "Acme")
	product := env.createProduct(t, "Laptop", "15-inch", "999.99")
	if _, err := env.subscriptions.Subscribe(ctx, user.Account.ID, product.ID); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if _, err := env.users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("users.Delete: %v", err)
	}

	_, err := env.users.GetByID(ctx, user.ID)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("user after delete: want not_found got %v", err)
	}
	_, err = env.accounts.GetByID(ctx, user.Account.ID)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("account after user delete: want not_found got %v", err)
	}
	if got := env.countLinks(t, user.Account.ID, product.ID); got != 0 {
		t.Fatalf("links after user delete: want=0 got=%d", got)
	}

	// Products survive the account-side cascade.
	if _, err := env.products.GetByID(ctx, product.ID); err != nil {
		t.Fatalf("product after user delete: %v", err)
	}
}

func TestUserDTOOmitsPassword(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "validName1", "Valid123!", "Acme")
	// The DTO shape has no password field at all; spot-check the username
	// made it across so the projection is real.
	if user.Username != "validName1" {
		t.Fatalf("username: want=validName1 got=%q", user.Username)
	}
}
