package auth

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when the configured cost is
// out of bcrypt's accepted range.
const DefaultHashCost = 12

// MinPasswordLength is the shortest password StrongPassword accepts.
const MinPasswordLength = 8

// StrongPassword reports whether a password meets the account policy:
// at least MinPasswordLength characters, with at least one upper-case
// letter, one lower-case letter, one digit and one symbol.
func StrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The salt is embedded in the returned hash.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
// A mismatch is not an error, it just returns false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
