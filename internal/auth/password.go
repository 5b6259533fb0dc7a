// Package auth implements password hashing with scrypt. Each user gets a
// random salt; the derived key and salt are stored hex-encoded.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters (interactive-login strength).
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16
)

// HashPassword derives a key from the plaintext password with a fresh
// random salt. Both return values are hex strings.
func HashPassword(password string) (salt, hash string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)

	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive key: %w", err)
	}
	return salt, hex.EncodeToString(derived), nil
}

// VerifyPassword re-derives the key for the provided password and salt
// and compares it to the stored hash in constant time.
func VerifyPassword(password, salt, expectedHash string) bool {
	expected, err := hex.DecodeString(expectedHash)
	if err != nil {
		return false
	}
	derived, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	if len(expected) != len(derived) {
		return false
	}
	return subtle.ConstantTimeCompare(expected, derived) == 1
}
