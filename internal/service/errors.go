package service

import "errors"

var (
	// ErrValidation covers missing or malformed request input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for a login email/password
	// mismatch. Unknown email and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyUsed = errors.New("email already in use")
	ErrPasswordTooWeak  = errors.New("password too weak")

	// Credential-resolution failures. All map to 401 at the boundary.
	ErrMissingCredential = errors.New("missing credential")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrUnknownSubject    = errors.New("unknown subject")
	ErrStaleCredential   = errors.New("credential predates password change")

	ErrForbidden    = errors.New("forbidden")
	ErrUserNotFound = errors.New("user not found")

	// ErrResetTokenInvalid covers an unknown, consumed, cleared or
	// expired reset token; callers cannot tell these apart.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")

	ErrNotificationFailed = errors.New("notification could not be sent")
)
