package errors

// Error codes, formatted CATEGORY_SPECIFIC_DETAIL.
// Codes are logged next to the user-facing notice and returned by JSON responses.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized         = "AUTH_UNAUTHORIZED"           // sign-in required
	AuthInvalidCredentials   = "AUTH_INVALID_CREDENTIALS"    // wrong username/password
	AuthInactiveAccount      = "AUTH_INACTIVE_ACCOUNT"       // account disabled
	AuthSessionInvalid       = "AUTH_SESSION_INVALID"        // bad or stale session
	AuthSessionRevoked       = "AUTH_SESSION_REVOKED"        // session logged out
	AuthIncorrectOldPassword = "AUTH_INCORRECT_OLD_PASSWORD" // change-password check failed
	AuthUsernameExists       = "AUTH_USERNAME_EXISTS"        // duplicate username
	AuthEmailAlreadyExists   = "AUTH_EMAIL_EXISTS"           // duplicate email
	AuthCSRFFailed           = "AUTH_CSRF_FAILED"            // form token missing or wrong

	// ==================== Password reset (RESET_) ====================
	ResetEmailNotRegistered = "RESET_EMAIL_NOT_REGISTERED" // no account for the address
	ResetUserNotFound       = "RESET_USER_NOT_FOUND"       // uid does not resolve
	ResetInvalidLink        = "RESET_INVALID_LINK"         // token invalid or expired

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"     // malformed input
	ValidationInvalidID        = "VALIDATION_INVALID_ID"        // bad path id
	ValidationRequired         = "VALIDATION_REQUIRED"          // missing field
	ValidationPasswordMismatch = "VALIDATION_PASSWORD_MISMATCH" // new/confirm differ
	ValidationDisallowedHost   = "VALIDATION_DISALLOWED_HOST"   // Host header not served here

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"
	CourseNotFound        = "COURSE_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalMailError     = "INTERNAL_MAIL_ERROR"
)
