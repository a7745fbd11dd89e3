// Package security wraps password hashing so callers never touch the
// underlying argon2 API directly.
package security

import (
	"github.com/matthewhartstonge/argon2"
)

var config = argon2.DefaultConfig()

// HashPassword hashes a plaintext password with argon2id.
func HashPassword(password string) (string, error) {
	encoded, err := config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the plaintext password matches the encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
