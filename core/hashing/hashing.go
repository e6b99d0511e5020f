package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// MaxInputBytes bounds hash input size. Identifiers are short; anything
// larger is a malformed upload and rejects the request rather than crash.
const MaxInputBytes = 2048

// ErrInputTooLarge is returned when the input exceeds MaxInputBytes.
var ErrInputTooLarge = errors.New("hash input too large")

// Hash returns the lowercase hex SHA-256 digest of raw. It is the one-way
// pseudonymization boundary: every uploader, creator, retainer, buyer, and
// content identifier passes through here before persistence, logging, or
// comparison. Digest collisions are accepted as statistically negligible.
func Hash(raw []byte) (string, error) {
	if len(raw) > MaxInputBytes {
		return "", ErrInputTooLarge
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// HashString is a convenience wrapper over Hash for string identifiers.
func HashString(raw string) (string, error) {
	return Hash([]byte(raw))
}
