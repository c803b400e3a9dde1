package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// PasswordHasher provides hashing logic to securely store passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Equal(password string, hash string) bool
}

// SHA256Hasher uses SHA256 to hash passwords with provided salt.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

// Hash creates SHA256 hash of given password.
func (h *SHA256Hasher) Hash(password string) (string, error) {
	hash := sha256.New()

	if _, err := hash.Write([]byte(password)); err != nil {
		return "", err
	}

	//nolint:perfsprint
	return fmt.Sprintf("%x", hash.Sum([]byte(h.salt))), nil
}

// Equal reports whether the password hashes to the stored value.
func (h *SHA256Hasher) Equal(password string, storedHash string) bool {
	hashed, err := h.Hash(password)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(hashed), []byte(storedHash)) == 1
}
