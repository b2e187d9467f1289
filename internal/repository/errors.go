// Package repository implements the data access layer over gorm.
//
// Lookups by id return a NOT_FOUND AppError when the row is missing; lookups
// by natural key (username, email, slug) return nil, nil instead so callers
// can use them as existence checks. Unique violations become CONFLICT errors.
package repository

import (
	"errors"
	"strings"

	"recshelf/internal/models"

	"gorm.io/gorm"
)

// isUniqueConstraintError matches postgres SQLSTATE 23505 and sqlite UNIQUE failures.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isForeignKeyError matches postgres SQLSTATE 23503 and sqlite FOREIGN KEY failures.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "23503")
}

// dbError classifies a gorm error; AppErrors pass through untouched.
func dbError(err error, conflictMsg string) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case isUniqueConstraintError(err):
		return models.NewConflictError(conflictMsg, err)
	default:
		return models.WrapInternal(err)
	}
}
