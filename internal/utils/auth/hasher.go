package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. Each call salts internally, so
// hashing the same password twice yields two different values.
const HashCost = 10

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", fmt.Errorf("password hashing: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword fails closed: a malformed stored hash and a plain
// mismatch are both reported as false, nothing more.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
