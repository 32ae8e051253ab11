package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used by every revision of the catalog.
const DefaultBcryptCost = 10

// HashPassword will generate a salted password hash at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	if cost == 0 {
		cost = DefaultBcryptCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash validates the given cleartext password against the
// stored hash. The comparison is constant-effort; callers must map the
// mismatch to the same response as an unknown account.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
