package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	legacyPrefix            = "pbkdf2:"
	legacyDefaultIterations = 600000
)

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash. Besides
// bcrypt it accepts "pbkdf2:<digest>[:<iterations>]$<salt>$<hex>" hashes
// carried over from earlier deployments.
func CheckPassword(stored, password string) bool {
	if strings.HasPrefix(stored, legacyPrefix) {
		return checkLegacyPassword(stored, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func checkLegacyPassword(stored, password string) bool {
	method, rest, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, digest, ok := strings.Cut(rest, "$")
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(digest)
	if err != nil || len(expected) == 0 {
		return false
	}

	parts := strings.Split(strings.TrimPrefix(method, legacyPrefix), ":")
	var newHash func() hash.Hash
	switch parts[0] {
	case "sha256":
		newHash = sha256.New
	case "sha512":
		newHash = sha512.New
	default:
		return false
	}

	iterations := legacyDefaultIterations
	if len(parts) > 1 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}

	derived := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), newHash)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
