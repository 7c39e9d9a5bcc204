package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/apperrors"
)

// wrapStorage classifies an error coming back out of a persistence call or
// transaction. Typed errors pass through untouched; duplicate-key errors
// (the lost side of a check-then-insert race) become recoverable conflicts;
// everything else is an unexpected storage fault.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewConflict(op, apperrors.KindUniqueConstraint, "duplicate key value violates a unique constraint")
	}
	return apperrors.Internal(op, err)
}
