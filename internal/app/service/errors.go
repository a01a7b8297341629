package service

import (
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
)

// User-recoverable failures. Message is the notice shown on the page.
var (
	// password reset
	ErrEmailNotRegistered = apperrors.NotFoundError(apperrors.ResetEmailNotRegistered, "Email not registered.")
	ErrUserNotFound       = apperrors.NotFoundError(apperrors.ResetUserNotFound, "User not found.")
	ErrInvalidResetLink   = apperrors.Authentication(apperrors.ResetInvalidLink, "Invalid link.")
	ErrPasswordMismatch   = apperrors.Validation(apperrors.ValidationPasswordMismatch, "Passwords do not match.")
	ErrPasswordRequired   = apperrors.Validation(apperrors.ValidationRequired, "Password is required.")

	// authentication
	ErrInvalidCredentials   = apperrors.Authentication(apperrors.AuthInvalidCredentials, "Invalid username or password.")
	ErrInactiveAccount      = apperrors.Authentication(apperrors.AuthInactiveAccount, "Invalid username or password.")
	ErrIncorrectOldPassword = apperrors.Authentication(apperrors.AuthIncorrectOldPassword, "Old password is incorrect.")
	ErrSessionInvalid       = apperrors.Authentication(apperrors.AuthSessionInvalid, "Please log in to continue.")
	ErrSessionRevoked       = apperrors.Authentication(apperrors.AuthSessionRevoked, "Please log in to continue.")

	// registration
	ErrUsernameTaken          = apperrors.ConflictError(apperrors.AuthUsernameExists, "Username already taken.")
	ErrEmailAlreadyRegistered = apperrors.ConflictError(apperrors.AuthEmailAlreadyExists, "Email already registered.")

	// shared
	ErrFieldsRequired = apperrors.Validation(apperrors.ValidationRequired, "All fields are required.")
	ErrCourseNotFound = apperrors.NotFoundError(apperrors.CourseNotFound, "Course not found.")
)
