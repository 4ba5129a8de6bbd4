package auth

import "errors"

var (
	// ErrUserNotFound is returned when no admin user has the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the password does not match during login.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCurrentPassword is returned by ChangePassword when the current password does not match.
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")

	// ErrPasswordTooShort is returned when a new password has fewer than MinPasswordLength characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrEmailEmpty is returned when an email is required but blank.
	ErrEmailEmpty = errors.New("email cannot be empty")

	// ErrSessionRevoked is returned by VerifySession when the password changed after sign in.
	ErrSessionRevoked = errors.New("session revoked")

	// ErrUnsupportedHash is returned for stored hashes that are neither argon2id nor bcrypt.
	ErrUnsupportedHash = errors.New("unsupported password hash")
)
