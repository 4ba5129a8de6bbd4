package auth

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for new passwords.
const MinPasswordLength = 8

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"} //nolint:gochecknoglobals

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return hash, nil
}

func isBcrypt(hash string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(hash, p) {
			return true
		}
	}

	return false
}

// VerifyPassword compares password against a stored hash.
// rehash reports a matching bcrypt hash that should be replaced.
func VerifyPassword(password, hash string) (match, rehash bool, err error) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		match, err = argon2id.ComparePasswordAndHash(password, hash)
		if err != nil {
			return false, false, fmt.Errorf("verify argon2id hash: %w", err)
		}

		return match, false, nil
	case isBcrypt(hash):
		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if err == nil {
			return true, true, nil
		}

		if err == bcrypt.ErrMismatchedHashAndPassword { //nolint:errorlint
			return false, false, nil
		}

		return false, false, fmt.Errorf("verify bcrypt hash: %w", err)
	default:
		return false, false, ErrUnsupportedHash
	}
}

// ValidateNewPassword checks the password policy.
func ValidateNewPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	return nil
}
