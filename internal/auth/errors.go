package auth

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrMissingCredential indicates neither cookie nor bearer header was supplied.
	ErrMissingCredential = apperr.New(apperr.Authentication, "authentication required")
	// ErrInvalidToken covers unverifiable, expired, or orphaned tokens.
	ErrInvalidToken = apperr.New(apperr.Authentication, "invalid or expired token")
	// ErrTokenRevoked indicates a refresh token that no longer matches the stored value.
	ErrTokenRevoked = apperr.New(apperr.Authentication, "refresh token has been revoked")
	// ErrAdminRequired indicates a verified identity without the admin role.
	ErrAdminRequired = apperr.New(apperr.Authorization, "admin role required")
)
