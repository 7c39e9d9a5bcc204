package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yungbote/catalog-backend/internal/apperrors"
)

// Stateless field rules, evaluated before any persistence write. Each rule
// set runs in a fixed order so the first violation reported is deterministic.

const passwordSpecialSet = `!@#$%^&*(),.?"{}|<>_`

const (
	UsernameMinLen    = 5
	UsernameMaxLen    = 30
	PasswordMinLen    = 8
	DisplayNameMaxLen = 20
)

func hasWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}

// AccountDisplayName enforces the display-name length cap. The field label
// names the offending input field in the message, which differs between the
// account path (DisplayName) and the user-create path (AccountDisplayName).
func AccountDisplayName(op, field, displayName string) error {
	if utf8.RuneCountInString(displayName) > DisplayNameMaxLen {
		return apperrors.NewValidation(op, fmt.Sprintf("%s length cannot be more than %d", field, DisplayNameMaxLen))
	}
	return nil
}

// Username enforces length bounds and the no-whitespace rule. Lengths are
// counted in runes, not bytes, so multibyte names are judged fairly.
func Username(op, username string) error {
	if utf8.RuneCountInString(username) > UsernameMaxLen {
		return apperrors.NewValidation(op, "Username length cannot be more than 30")
	}
	if utf8.RuneCountInString(username) < UsernameMinLen {
		return apperrors.NewValidation(op, "Username length cannot be less than 5")
	}
	if hasWhitespace(username) {
		return apperrors.NewValidation(op, "Username cannot have any space characters")
	}
	return nil
}

// Password enforces minimum length, character-class requirements and the
// no-whitespace rule, in that order.
func Password(op, password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return apperrors.NewValidation(op, "Password length cannot be less than 8")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return apperrors.NewValidation(op, "Password must have at least one upper case character")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return apperrors.NewValidation(op, "Password must have at least one lower case character")
	}
	if !strings.ContainsAny(password, passwordSpecialSet) {
		return apperrors.NewValidation(op, "Password must have at least one special character")
	}
	if hasWhitespace(password) {
		return apperrors.NewValidation(op, "Password cannot have any space characters")
	}
	return nil
}

// User runs the username rules before the password rules.
func User(op, username, password string) error {
	if err := Username(op, username); err != nil {
		return err
	}
	return Password(op, password)
}

// Product requires a non-blank name and description.
func Product(op, name, description string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation(op, "Product name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidation(op, "Product description cannot be empty")
	}
	return nil
}

// AddonName requires a non-blank addon name.
func AddonName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation(op, "Addon name cannot be empty")
	}
	return nil
}
