// Package checksum computes content digests used for customization detection.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Matches reports whether data hashes to the given hex digest.
func Matches(data []byte, digest string) bool {
	return Sum(data) == digest
}
