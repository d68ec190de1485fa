package store

import (
	"errors"

	"gorm.io/gorm"

	"recipeshare/internal/apperr"
)

// translateError maps gorm errors onto apperr kinds. Errors that already
// carry a kind pass through unchanged.
func translateError(err error, notFoundMsg string) error {
	var appErr *apperr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.KindConflict, "Duplicate record", err)
	default:
		return apperr.Internal(err)
	}
}
