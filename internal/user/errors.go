package user

import "github.com/aidosqali/vidtube/internal/apperr"

var (
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = apperr.New(apperr.Conflict, "username already taken")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = apperr.New(apperr.Conflict, "email already registered")
	// ErrInvalidCredentials is returned when login authentication fails.
	ErrInvalidCredentials = apperr.New(apperr.Authentication, "invalid credentials")
	// ErrUserNotFound signals that the user could not be located.
	ErrUserNotFound = apperr.New(apperr.NotFound, "user not found")
	// ErrWrongPassword is returned when the old password does not match.
	ErrWrongPassword = apperr.New(apperr.Validation, "current password is incorrect")
)
