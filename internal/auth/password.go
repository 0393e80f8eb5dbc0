package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing any of them invalidates every stored hash, so
// they are fixed here rather than configurable.
const (
	pbkdf2Iterations = 100_000
	saltLen          = 16
	keyLen           = 32
)

// HashPassword derives a key from password with PBKDF2-SHA256. When salt is
// nil a fresh random salt is generated. Returns (derivedKey, salt).
func HashPassword(password string, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)
	return dk, salt, nil
}

// VerifyPassword reports whether password matches the stored derived key.
// Comparison is constant-time to avoid timing side channels.
func VerifyPassword(password string, hash, salt []byte) bool {
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(dk, hash) == 1
}
