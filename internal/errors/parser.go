package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ParseError maps storage errors to user-facing AppErrors. context names the
// operation (e.g. "register user") and picks the not-found wording.
// Errors that do not map to a known case return nil.
func ParseError(err error, context string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError(ResourceNotFound, getNotFoundMessage(context))
	}

	// PostgreSQL 23505 and SQLite "UNIQUE constraint failed"
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// PostgreSQL 23503
	if strings.Contains(errLower, "foreign key constraint") {
		return ConflictError(ResourceConflict, "The record is referenced by other data.")
	}

	// PostgreSQL 23502
	if strings.Contains(errLower, "violates not-null constraint") || strings.Contains(errLower, "not null constraint failed") {
		return Validation(ValidationRequired, "All fields are required.")
	}

	return nil
}

func parseDuplicateKeyError(errLower string) *AppError {
	if strings.Contains(errLower, "username") {
		return ConflictError(AuthUsernameExists, "Username already taken.")
	}
	if strings.Contains(errLower, "email") {
		return ConflictError(AuthEmailAlreadyExists, "Email already registered.")
	}
	return ConflictError(ResourceAlreadyExists, "This record already exists.")
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "user") {
		return "User not found."
	}
	if strings.Contains(contextLower, "course") {
		return "Course not found."
	}
	return "The requested record was not found."
}
